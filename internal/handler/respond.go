package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// pathInt binds the named chi URL parameter to a positive int that fits the
// int4 id columns.
func pathInt(r *http.Request, name string) (int, error) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v <= 0 || v > math.MaxInt32 {
		return 0, fmt.Errorf("invalid %s: must be an integer between 1 and %d", name, math.MaxInt32)
	}
	return v, nil
}

// queryInt binds an optional integer query parameter. A missing parameter
// leaves the result nil.
func queryInt(r *http.Request, name string) (*int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

var (
	// errEmptyBody is returned by decodeJSON when the request has no body.
	errEmptyBody = errors.New("request body is required")
	// errTrailingData is returned when the body holds more than one JSON value.
	errTrailingData = errors.New("request body must contain a single JSON value")
)

// decodeJSON decodes the request body into dst. The body must hold exactly
// one JSON value. It writes the error response itself and reports false when
// decoding failed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	switch {
	case err == nil:
		err = dec.Decode(&struct{}{})
		if errors.Is(err, io.EOF) {
			return true
		}
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = errTrailingData
		}
	case errors.Is(err, io.EOF):
		if optional {
			return true
		}
		err = errEmptyBody
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
	return false
}
