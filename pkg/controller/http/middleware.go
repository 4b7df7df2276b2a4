package http

import (
	"net/http"

	"github.com/getsentry/sentry-go"
)

// sentryHub binds a request-scoped Sentry hub to the context so that
// errutil can attach captured errors to the right request.
func sentryHub(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hub := sentry.GetHubFromContext(ctx)
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
			ctx = sentry.SetHubOnContext(ctx, hub)
		}
		hub.Scope().SetRequest(r)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
