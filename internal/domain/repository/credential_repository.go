package repository

import (
	"context"
	"errors"

	"guidemyai/internal/domain/entity"
)

// ErrCredentialNotFound is returned when no credential matches the lookup.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository defines the operations for login-credential persistence.
type CredentialRepository interface {
	// FindByProvider retrieves the credential for a provider/provider-user pair,
	// e.g. ("email", address) for password logins.
	FindByProvider(ctx context.Context, provider, providerUserID string) (*entity.Credential, error)

	// Create persists a new credential.
	Create(ctx context.Context, credential *entity.Credential) error
}
