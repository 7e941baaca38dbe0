// Package envelope maps subscription results to the status codes and JSON
// bodies shared by the HTTP and event adapters.
package envelope

import (
	"net/http"

	"github.com/ignite/newsletter-subscriber/internal/pkg/httputil"
	"github.com/ignite/newsletter-subscriber/internal/service/subscription"
)

// Client-facing messages.
const (
	MsgSubscribed        = "Successfully subscribed to the newsletter"
	MsgAlreadySubscribed = "You are already subscribed to the newsletter"
	MsgStorageFailure    = "Failed to process subscription"
	MsgInternalError     = "Internal server error"
	MsgUnsupportedMedia  = "Content-Type must be application/json"
)

// Success is the body of 200 and 201 responses.
type Success struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FromResult returns the status code and body for res.
func FromResult(res subscription.Result) (int, any) {
	switch res.Outcome {
	case subscription.OutcomeSubscribed:
		return http.StatusCreated, Success{Success: true, Message: MsgSubscribed}
	case subscription.OutcomeAlreadySubscribed:
		return http.StatusOK, Success{Success: true, Message: MsgAlreadySubscribed}
	case subscription.OutcomeInvalid:
		if res.Err != nil {
			return http.StatusBadRequest, httputil.ErrorResponse{Error: res.Err.Message}
		}
		return http.StatusBadRequest, httputil.ErrorResponse{Error: subscription.ErrMalformedBody.Message}
	case subscription.OutcomeStorageFailure:
		return http.StatusInternalServerError, httputil.ErrorResponse{Error: MsgStorageFailure}
	default:
		return http.StatusInternalServerError, httputil.ErrorResponse{Error: MsgInternalError}
	}
}

// Internal returns the 500 body for an unexpected fault.
func Internal() (int, any) {
	return http.StatusInternalServerError, httputil.ErrorResponse{Error: MsgInternalError}
}
