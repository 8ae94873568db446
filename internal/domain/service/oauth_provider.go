package service

import "context"

// OAuthUser is the identity returned by a social sign-in provider.
type OAuthUser struct {
	ProviderUserID string
	Email          string
	Name           string
}

// OAuthProvider abstracts a social sign-in provider (Google today).
type OAuthProvider interface {
	// BuildAuthorizationURL constructs the provider's authorization URL with a
	// CSRF state parameter.
	BuildAuthorizationURL(state string) string

	// GenerateState produces a new CSRF state and records it for validation.
	GenerateState() string

	// ValidateState checks and consumes a state previously handed out.
	ValidateState(state string) bool

	// ExchangeCode redeems the authorization code and returns the provider's
	// view of the user.
	ExchangeCode(ctx context.Context, code string) (*OAuthUser, error)
}
