package handler

import (
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/travel-agency/internal/domain"
)

// Error codes carried in ErrorDetail.Code.
const (
	codeBadRequest       = "bad_request"
	codeNotFound         = "not_found"
	codeValidation       = "validation_error"
	codeConflict         = "conflict"
	codeAlreadyEnrolled  = "already_enrolled"
	codeCapacityExceeded = "capacity_exceeded"
	codeTooLarge         = "request_too_large"
	codeUnavailable      = "unavailable"
	codeInternal         = "internal_error"
)

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// writeError writes an error envelope with the given status.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody(code, message))
}

// writeServiceError maps an error returned by the service layer onto an HTTP
// status and error code. Anything that is not a known domain kind is logged
// and reported as a generic 500 so store details never reach the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFoundMessage(err))
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		writeError(w, http.StatusConflict, codeAlreadyEnrolled, "client is already registered for this trip")
	case errors.Is(err, domain.ErrPeselTaken):
		writeError(w, http.StatusConflict, codeConflict, "client with this PESEL already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, unwrapMessage(err))
	case errors.Is(err, domain.ErrCapacityExceeded):
		writeError(w, http.StatusBadRequest, codeCapacityExceeded, "trip has reached maximum capacity")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// notFoundMessage names the missing resource. The specific not-found errors
// are checked before the generic kind.
func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return "client not found"
	case errors.Is(err, domain.ErrTripNotFound):
		return "trip not found"
	case errors.Is(err, domain.ErrEnrollmentNotFound):
		return "registration not found"
	default:
		return "not found"
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.ClientService.Create: validation error: pesel is required" → "pesel is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "service.") {
		if _, rest, ok := strings.Cut(msg, ": "); ok {
			msg = rest
		}
	}
	for _, kind := range []error{domain.ErrValidation, domain.ErrConflict} {
		msg = strings.Replace(msg, kind.Error()+": ", "", 1)
	}
	return msg
}
