package middleware

import (
	"context"

	"github.com/aden91/tidar-web-app/internal/domain"
)

// ContextKey is a private type for request context keys to avoid collisions.
type ContextKey string

// IdentityCtxKey holds the *domain.Identity attached by Auth.
const IdentityCtxKey = ContextKey("identity")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, id)
}

// IdentityFromContext returns the verified identity, or nil outside the Auth gate.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(IdentityCtxKey).(*domain.Identity)
	return id
}
