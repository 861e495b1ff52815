// Package httpserver exposes the interview pipeline over a JSON REST API and
// keeps HTTP concerns out of the usecase layer.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blairify/interview-engine/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details any) {
	status := http.StatusInternalServerError
	code := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
		code = "RATE_LIMITED"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		status = http.StatusServiceUnavailable
		code = "UPSTREAM_TIMEOUT"
	case errors.Is(err, domain.ErrUpstreamError):
		status = http.StatusServiceUnavailable
		code = "UPSTREAM_ERROR"
	}
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: err.Error(), Details: details}})
}
