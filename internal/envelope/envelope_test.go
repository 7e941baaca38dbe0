package envelope

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ignite/newsletter-subscriber/internal/service/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResult(t *testing.T) {
	tests := []struct {
		name   string
		res    subscription.Result
		status int
		body   string
	}{
		{
			name:   "subscribed",
			res:    subscription.Result{Outcome: subscription.OutcomeSubscribed},
			status: http.StatusCreated,
			body:   `{"success":true,"message":"Successfully subscribed to the newsletter"}`,
		},
		{
			name:   "already subscribed",
			res:    subscription.Result{Outcome: subscription.OutcomeAlreadySubscribed},
			status: http.StatusOK,
			body:   `{"success":true,"message":"You are already subscribed to the newsletter"}`,
		},
		{
			name:   "validation",
			res:    subscription.Result{Outcome: subscription.OutcomeInvalid, Err: subscription.ErrMissingEmail},
			status: http.StatusBadRequest,
			body:   `{"error":"Missing required field: email"}`,
		},
		{
			name:   "storage failure",
			res:    subscription.Result{Outcome: subscription.OutcomeStorageFailure},
			status: http.StatusInternalServerError,
			body:   `{"error":"Failed to process subscription"}`,
		},
		{
			name:   "unknown outcome",
			res:    subscription.Result{Outcome: "weird"},
			status: http.StatusInternalServerError,
			body:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := FromResult(tt.res)
			assert.Equal(t, tt.status, status)
			data, err := json.Marshal(body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(data))
		})
	}
}

func TestInternal(t *testing.T) {
	status, body := Internal()
	assert.Equal(t, http.StatusInternalServerError, status)
	data, _ := json.Marshal(body)
	assert.JSONEq(t, `{"error":"Internal server error"}`, string(data))
}
