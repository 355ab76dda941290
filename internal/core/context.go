package core

import "context"

type contextKey string

const ctxKeySession contextKey = "session"

// ContextWithSession attaches the caller's session to ctx.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// SessionFromContext returns the session attached by ContextWithSession, or nil.
func SessionFromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKeySession).(*Session); ok {
		return s
	}
	return nil
}
