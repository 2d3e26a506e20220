package middleware

import (
	"context"

	"github.com/dkarlsson/taskhive/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, ident domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, ident)
}

// IdentityFromContext returns the identity set by the auth middleware.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return domain.Identity{}, false
	}
	ident, ok := v.(domain.Identity)
	return ident, ok
}
