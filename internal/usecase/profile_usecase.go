package usecase

import (
	"context"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
)

// SaveProfileInput defines the data for creating or updating a profile and
// replacing its rule and MCP references in one operation.
type SaveProfileInput struct {
	Name    string
	RuleIDs []uuid.UUID
	MCPIDs  []uuid.UUID
}

// ProfileUsecase defines the profile operations, each scoped to the calling
// user. Membership changes go through whole-set replacement only.
type ProfileUsecase interface {
	// List returns the user's profiles, newest first, with references loaded.
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Profile, error)

	// Get returns one profile with references loaded, checking ownership.
	Get(ctx context.Context, userID, profileID uuid.UUID) (*entity.Profile, error)

	// Create persists a new profile and its reference sets atomically.
	Create(ctx context.Context, userID uuid.UUID, input SaveProfileInput) (*entity.Profile, error)

	// Update renames a profile and replaces its reference sets atomically,
	// checking ownership.
	Update(ctx context.Context, userID, profileID uuid.UUID, input SaveProfileInput) (*entity.Profile, error)

	// Delete removes a profile, checking ownership. Membership rows go with it.
	Delete(ctx context.Context, userID, profileID uuid.UUID) error
}
