package api

import (
	"encoding/json"
	"net/http"

	"github.com/kwyip/qroute/pkg/errors"
)

// errorPayload is the wire form of an API error.
type errorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps an error to its HTTP status and writes the error payload.
func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	var payload errorPayload
	payload.Error.Code = string(code)
	payload.Error.Message = errors.UserMessage(err)

	respondJSON(w, statusFromCode(code), payload)
}

// statusFromCode maps error codes to HTTP statuses. Unknown codes are
// treated as internal errors so new codes fail loudly rather than leaking
// as false client errors.
func statusFromCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidCircuit,
		errors.ErrCodeInvalidTopology,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeParseFailure,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest

	case errors.ErrCodeUnroutable:
		return http.StatusUnprocessableEntity

	case errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound,
		errors.ErrCodeJobNotFound,
		errors.ErrCodeTopologyNotFound:
		return http.StatusNotFound

	case errors.ErrCodeBusy:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
