package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/handler"
)

func TestCreateClient_returns201WithLocation(t *testing.T) {
	var got domain.Client
	svc := &mockClientServicer{
		create: func(_ context.Context, c domain.Client) (domain.Client, error) {
			got = c
			c.ID = 42
			return c, nil
		},
	}
	h := newHTTPHandler(deps{clients: svc})

	phone := "+48123456789"
	rec := do(t, h, http.MethodPost, "/clients", jsonBody(t, handler.CreateClientRequest{
		FirstName: "Anna",
		LastName:  "Nowak",
		Email:     "anna@example.com",
		Telephone: &phone,
		Pesel:     "90010112345",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/clients/42", rec.Header().Get("Location"))
	var body handler.ClientCreated
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 42, body.ID)

	assert.Equal(t, "Anna", got.FirstName)
	assert.Equal(t, "90010112345", got.Pesel)
	require.NotNil(t, got.Telephone)
	assert.Equal(t, phone, *got.Telephone)
}

func TestCreateClient_validationError_returns422(t *testing.T) {
	svc := &mockClientServicer{
		create: func(context.Context, domain.Client) (domain.Client, error) {
			return domain.Client{}, fmt.Errorf("service.ClientService.Create: %w",
				fmt.Errorf("%w: pesel must be exactly 11 digits", domain.ErrValidation))
		},
	}
	h := newHTTPHandler(deps{clients: svc})

	rec := do(t, h, http.MethodPost, "/clients", jsonBody(t, handler.CreateClientRequest{Pesel: "123"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "validation_error", detail.Code)
	assert.Equal(t, "pesel must be exactly 11 digits", detail.Message)
}

func TestCreateClient_duplicatePesel_returns409(t *testing.T) {
	svc := &mockClientServicer{
		create: func(context.Context, domain.Client) (domain.Client, error) {
			return domain.Client{}, fmt.Errorf("service.ClientService.Create: %w", domain.ErrPeselTaken)
		},
	}
	h := newHTTPHandler(deps{clients: svc})

	rec := do(t, h, http.MethodPost, "/clients", jsonBody(t, handler.CreateClientRequest{Pesel: "90010112345"}))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeError(t, rec).Code)
}

func TestCreateClient_malformedBody_returns422(t *testing.T) {
	h := newHTTPHandler(deps{})

	rec := do(t, h, http.MethodPost, "/clients", strings.NewReader(`{"first_name":`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Code)
}

func TestCreateClient_emptyBody_returns422(t *testing.T) {
	h := newHTTPHandler(deps{})

	rec := do(t, h, http.MethodPost, "/clients", strings.NewReader(""))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "request body is required", decodeError(t, rec).Message)
}

func TestGetClient_found(t *testing.T) {
	svc := &mockClientServicer{
		getByID: func(_ context.Context, id int) (domain.Client, error) {
			return domain.Client{ID: id, FirstName: "Jan", LastName: "Kowalski", Email: "jan@example.com", Pesel: "85050512345"}, nil
		},
	}
	h := newHTTPHandler(deps{clients: svc})

	rec := do(t, h, http.MethodGet, "/clients/3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.Client
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 3, body.ID)
	assert.Equal(t, "Kowalski", body.LastName)
	assert.Nil(t, body.Telephone)
}

func TestGetClient_notFound(t *testing.T) {
	svc := &mockClientServicer{
		getByID: func(context.Context, int) (domain.Client, error) {
			return domain.Client{}, fmt.Errorf("service.ClientService.GetByID: %w", domain.ErrClientNotFound)
		},
	}
	h := newHTTPHandler(deps{clients: svc})

	rec := do(t, h, http.MethodGet, "/clients/3", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "client not found", decodeError(t, rec).Message)
}

func TestCreateClient_oversizedBody_returns413(t *testing.T) {
	h := newHTTPHandler(deps{})
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 16)
		h.ServeHTTP(w, r)
	})

	rec := do(t, limited, http.MethodPost, "/clients", jsonBody(t, handler.CreateClientRequest{
		FirstName: strings.Repeat("a", 64),
	}))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request_too_large", decodeError(t, rec).Code)
}
