package auth

import (
	"context"

	"github.com/google/uuid"
)

// Session is the resolved identity for one request, carried via context.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

type sessionKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom extracts the session placed by the Authenticate middleware.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}
