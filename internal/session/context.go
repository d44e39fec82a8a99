package session

import (
	"context"
	"errors"

	"github.com/GlennSimanjorang/sarpras/internal/api"
)

type ctxKey struct{}

func WithSID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sid)
}

func SIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(ctxKey{}).(string)
	return sid, ok && sid != ""
}

// ContextSource resolves the bearer token for whatever session issued the
// current request. It satisfies api.TokenSource, so the client re-reads the
// store on every call instead of caching credentials.
type ContextSource struct {
	Store TokenStore
}

func (s ContextSource) Token(ctx context.Context) (string, error) {
	sid, ok := SIDFromContext(ctx)
	if !ok {
		return "", api.ErrUnauthenticated
	}
	tok, err := s.Store.Get(ctx, sid)
	if errors.Is(err, ErrNoSession) {
		return "", api.ErrUnauthenticated
	}
	if err != nil {
		return "", err
	}
	return tok, nil
}
