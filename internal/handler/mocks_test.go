package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/handler"
)

// mockClientServicer is a test double for handler.ClientServicer.
// Set only the method fields your test needs.
type mockClientServicer struct {
	create  func(ctx context.Context, c domain.Client) (domain.Client, error)
	getByID func(ctx context.Context, id int) (domain.Client, error)
}

func (m *mockClientServicer) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	return m.create(ctx, c)
}
func (m *mockClientServicer) GetByID(ctx context.Context, id int) (domain.Client, error) {
	return m.getByID(ctx, id)
}

// mockTripServicer is a test double for handler.TripServicer.
type mockTripServicer struct {
	listPaged func(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error)
	getByID   func(ctx context.Context, id int) (domain.Trip, error)
}

func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

// mockEnrollmentServicer is a test double for handler.EnrollmentServicer.
type mockEnrollmentServicer struct {
	enroll        func(ctx context.Context, clientID, tripID int, paymentDate *domain.CompactDate) (domain.Enrollment, error)
	unenroll      func(ctx context.Context, clientID, tripID int) error
	listForClient func(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
}

func (m *mockEnrollmentServicer) Enroll(ctx context.Context, clientID, tripID int, paymentDate *domain.CompactDate) (domain.Enrollment, error) {
	return m.enroll(ctx, clientID, tripID, paymentDate)
}
func (m *mockEnrollmentServicer) Unenroll(ctx context.Context, clientID, tripID int) error {
	return m.unenroll(ctx, clientID, tripID)
}
func (m *mockEnrollmentServicer) ListForClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	return m.listForClient(ctx, clientID)
}

// mockPinger is a test double for handler.Pinger.
type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.ClientServicer     = (*mockClientServicer)(nil)
	_ handler.TripServicer       = (*mockTripServicer)(nil)
	_ handler.EnrollmentServicer = (*mockEnrollmentServicer)(nil)
	_ handler.Pinger             = mockPinger{}
)

// ---- helpers ---------------------------------------------------------------

// deps bundles the mocks a test wants wired; nil fields get empty mocks
// that panic if called, which surfaces unexpected service calls.
type deps struct {
	clients     handler.ClientServicer
	trips       handler.TripServicer
	enrollments handler.EnrollmentServicer
	db          handler.Pinger
}

// newHTTPHandler wires a Server with the given mocks into a chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(d deps) http.Handler {
	if d.clients == nil {
		d.clients = &mockClientServicer{}
	}
	if d.trips == nil {
		d.trips = &mockTripServicer{}
	}
	if d.enrollments == nil {
		d.enrollments = &mockEnrollmentServicer{}
	}
	srv := handler.NewServer(d.clients, d.trips, d.enrollments, d.db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}
