package repository

import (
	"context"
	"errors"

	"guidemyai/internal/domain/entity"

	"github.com/google/uuid"
)

// Profile persistence errors.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProfileNameTaken = errors.New("profile name already taken")
)

// ProfileRepository defines the operations for profile persistence, including
// the rule and MCP membership join tables.
type ProfileRepository interface {
	// FindByUserID retrieves all profiles owned by a user, newest first, with
	// their rule and MCP references loaded.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Profile, error)

	// FindByID retrieves a single profile by id with references loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// Create persists a new profile with no references.
	Create(ctx context.Context, profile *entity.Profile) error

	// UpdateName renames an existing profile.
	UpdateName(ctx context.Context, id uuid.UUID, name string) error

	// Delete removes a profile by id; membership rows cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceAssociations replaces the full rule and MCP membership of a
	// profile with the given sets.
	ReplaceAssociations(ctx context.Context, profileID uuid.UUID, ruleIDs, mcpIDs []uuid.UUID) error
}
