package repository

import (
	"context"
	"errors"

	"guidemyai/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRuleNotFound is returned when a rule id does not exist.
var ErrRuleNotFound = errors.New("rule not found")

// RuleRepository defines the operations for rule persistence.
type RuleRepository interface {
	// FindByUserID retrieves all rules owned by a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error)

	// FindByID retrieves a single rule by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rule, error)

	// Create persists a new rule.
	Create(ctx context.Context, rule *entity.Rule) error

	// Update modifies an existing rule.
	Update(ctx context.Context, rule *entity.Rule) error

	// Delete removes a rule by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
