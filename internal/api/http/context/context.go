package context

import (
	"context"

	"github.com/contabildrive/drive-server/internal/model"
)

type contextKey int

const principalKey contextKey = iota

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(model.Principal)
	return p, ok
}
