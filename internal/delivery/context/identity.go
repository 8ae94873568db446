// Package context carries request-scoped values between middleware and handlers.
package context

import (
	"context"

	"github.com/google/uuid"
)

// KeyIdentity is the key for storing the authenticated identity in context.
const KeyIdentity ContextKey = "identity"

// Identity is the authenticated caller of a request. It is immutable once the
// authenticator resolves it; handlers read it, they never write it.
type Identity struct {
	UserID    uuid.UUID
	UserEmail string
	UserName  string
	Token     string
}

// WithIdentity returns a new context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, KeyIdentity, identity)
}

// GetIdentity extracts the authenticated identity from context.Context.
// Returns nil for anonymous requests.
func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(KeyIdentity).(*Identity); ok {
		return identity
	}

	return nil
}
