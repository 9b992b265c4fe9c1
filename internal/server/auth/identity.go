package auth

import (
	"context"

	"github.com/dmitrijs2005/aycode/internal/server/models"
)

// Identity is the request-scoped result of token validation. Role is empty
// until the role gate has loaded the user record.
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity attached by the authentication
// gate, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
