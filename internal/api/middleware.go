package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/ignite/newsletter-subscriber/internal/envelope"
	"github.com/ignite/newsletter-subscriber/internal/pkg/httputil"
)

// recoverJSON turns a handler panic into a structured 500 so no fault
// escapes the adapter unhandled.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			httputil.InternalError(w, fmt.Errorf("panic: %v", rec), envelope.MsgInternalError,
				"path", r.URL.Path,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(w, r)
	})
}
