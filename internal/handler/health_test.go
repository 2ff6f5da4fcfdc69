package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/handler"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	h := newHTTPHandler(deps{db: mockPinger{}})

	rec := do(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

func TestGetHealth_withoutDatabase_returns200(t *testing.T) {
	h := newHTTPHandler(deps{})

	rec := do(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetHealth_databaseDown_returns503(t *testing.T) {
	h := newHTTPHandler(deps{db: mockPinger{err: errors.New("connection refused")}})

	rec := do(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "unavailable", decodeError(t, rec).Code)
}
