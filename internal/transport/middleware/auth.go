package middleware

import (
	"net/http"

	"github.com/novahq/nova-admin/internal/auth"
	"github.com/novahq/nova-admin/pkg/logger"
)

// SessionLogContext tags the logging context with the resolved session's
// user id. Mount after the auth middleware.
func SessionLogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, ok := auth.SessionFromContext(r.Context()); ok && session != nil {
			ctx := logger.With(r.Context(), "userID", session.ID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
