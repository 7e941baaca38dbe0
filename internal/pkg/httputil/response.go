package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/ignite/newsletter-subscriber/internal/pkg/logger"
)

// ErrorResponse is the standard error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code. If encoding
// fails the failure is logged; headers have already been sent.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("JSON encode error", "error", err)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// InternalError writes a 500 error. Logs the real error but returns the
// given generic message to the client (never leak internals). fields are
// extra key/value pairs for the log entry.
func InternalError(w http.ResponseWriter, err error, message string, fields ...interface{}) {
	logger.Error("internal error", append([]interface{}{"error", err}, fields...)...)
	Error(w, http.StatusInternalServerError, message)
}
