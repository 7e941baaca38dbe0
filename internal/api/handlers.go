package api

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ignite/newsletter-subscriber/internal/envelope"
	"github.com/ignite/newsletter-subscriber/internal/metrics"
	"github.com/ignite/newsletter-subscriber/internal/pkg/httputil"
	"github.com/ignite/newsletter-subscriber/internal/service/subscription"
)

// maxBodyBytes caps how much of a request body the subscribe endpoint reads.
const maxBodyBytes = 1 << 20

// Handlers contains all HTTP handlers
type Handlers struct {
	subscriptions *subscription.Service
	health        *HealthChecker
	metrics       *metrics.Metrics
}

// NewHandlers creates a new Handlers instance. health and m may be nil, in
// which case the corresponding routes are not registered.
func NewHandlers(svc *subscription.Service, health *HealthChecker, m *metrics.Metrics) *Handlers {
	return &Handlers{
		subscriptions: svc,
		health:        health,
		metrics:       m,
	}
}

// Subscribe handles a newsletter signup.
//
//	POST /subscribe-newsletter
//	{"email": "reader@example.com"}
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		httputil.Error(w, http.StatusUnsupportedMediaType, envelope.MsgUnsupportedMedia)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		status, payload := envelope.FromResult(h.subscriptions.Reject(subscription.ErrMalformedBody))
		httputil.JSON(w, status, payload)
		return
	}

	status, payload := envelope.FromResult(h.subscriptions.SubscribeJSON(r.Context(), body))
	httputil.JSON(w, status, payload)
}

// isJSONContentType accepts application/json and application/*+json,
// ignoring parameters such as charset.
func isJSONContentType(header string) bool {
	if header == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	if mt == "application/json" {
		return true
	}
	return strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	httputil.Error(w, http.StatusNotFound, "Not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httputil.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}
