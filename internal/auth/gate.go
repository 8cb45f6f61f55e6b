package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
)

// AccessGate builds route middleware on top of the session snapshot placed
// by AuthMiddleware. Denials are gating decisions: a 403, never an error
// propagated anywhere.
type AccessGate struct {
	logger *slog.Logger
}

func NewAccessGate(logger *slog.Logger) *AccessGate {
	return &AccessGate{logger: logger}
}

func (g *AccessGate) deny(w http.ResponseWriter, r *http.Request, session *SessionUser, what string) {
	g.logger.WarnContext(r.Context(), "access denied",
		"user_id", session.ID,
		"required", what,
		"path", r.URL.Path)
	http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
}

func (g *AccessGate) wrap(check func(*SessionUser, *http.Request) bool, what string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok || session == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !check(session, r) {
				g.deny(w, r, session, what)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates on a single permission key.
func (g *AccessGate) RequirePermission(key string) func(http.Handler) http.Handler {
	return g.wrap(func(s *SessionUser, _ *http.Request) bool {
		return s.Snapshot.HasPermission(key)
	}, key)
}

// RequirePageRead gates on page visibility.
func (g *AccessGate) RequirePageRead(page string) func(http.Handler) http.Handler {
	return g.wrap(func(s *SessionUser, _ *http.Request) bool {
		return s.Snapshot.CanReadPage(page)
	}, "read:"+page)
}

// RequirePageWrite gates on page mutation rights.
func (g *AccessGate) RequirePageWrite(page string) func(http.Handler) http.Handler {
	return g.wrap(func(s *SessionUser, _ *http.Request) bool {
		return s.Snapshot.CanWritePage(page)
	}, "write:"+page)
}

// RequireChannelWrite gates on the channel id found in the named URL
// parameter.
func (g *AccessGate) RequireChannelWrite(param string) func(http.Handler) http.Handler {
	return g.wrap(func(s *SessionUser, r *http.Request) bool {
		channelID := chi.URLParam(r, param)
		if channelID == "" {
			return false
		}
		return s.Snapshot.CanWriteChannel(channelID)
	}, "channel:write")
}
