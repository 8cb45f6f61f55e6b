package auth

import "context"

type ctxKey string

const ContextUserKey ctxKey = "session_user"

// SessionFromContext returns the resolved session placed by AuthMiddleware.
func SessionFromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(ContextUserKey).(*SessionUser)
	return u, ok
}

// ContextWithSession is used by middleware and tests to inject a session.
func ContextWithSession(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
