package auth

import (
	"context"
	"net/http"
)

// Session identifies the logged-in user for a request.
type Session struct {
	UserID   int64
	Username string
}

// SessionStore reads, writes and clears the current user's session.
// Handlers depend only on this interface, so the backing mechanism can change.
type SessionStore interface {
	Get(r *http.Request) (Session, bool)
	Set(w http.ResponseWriter, s Session) error
	Clear(w http.ResponseWriter)
}

type contextKey string

// SessionKey is the context key for the resolved session.
const SessionKey = contextKey("session")

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// FromContext returns the session stored by LoadSession, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(SessionKey).(Session)
	return s, ok
}
