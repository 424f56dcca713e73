package session

import (
	"context"

	"github.com/expohall/stall-reservation-portal/internal/model"
)

// Source supplies the current session to components that read it.  The
// API client wrappers take a Source at construction instead of looking
// the session up ambiently, so the same wrappers run against a fixed
// session in tests and against the per-request session in the portal.
type Source interface {
	Session(ctx context.Context) model.Session
}

// Static is a Source that always returns the same session.  Useful in
// tests and one-shot tools.
type Static model.Session

func (s Static) Session(context.Context) model.Session { return model.Session(s) }

type ctxKey struct{}

// WithSession returns a child context carrying sess.  The auth
// middleware attaches the request's session here after loading it from
// the store.
func WithSession(ctx context.Context, sess model.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext extracts the session attached by WithSession.  The zero
// session is returned when none is present.
func FromContext(ctx context.Context) model.Session {
	sess, _ := ctx.Value(ctxKey{}).(model.Session)
	return sess
}

// ContextSource reads the session from the request context.  It is the
// Source wired into the portal's long-lived client wrappers.
type ContextSource struct{}

func (ContextSource) Session(ctx context.Context) model.Session { return FromContext(ctx) }
