package usecase

import (
	"context"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
)

// RuleInput defines the data for creating or updating a rule.
type RuleInput struct {
	Name    string
	Content string
}

// RuleUsecase defines the rule operations. Every operation is scoped to the
// calling user; acting on another user's rule is forbidden.
type RuleUsecase interface {
	// List returns the user's rules, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error)

	// Get returns one rule, checking ownership.
	Get(ctx context.Context, userID, ruleID uuid.UUID) (*entity.Rule, error)

	// Create validates and persists a new rule.
	Create(ctx context.Context, userID uuid.UUID, input RuleInput) (*entity.Rule, error)

	// Update validates and modifies an existing rule, checking ownership.
	Update(ctx context.Context, userID, ruleID uuid.UUID, input RuleInput) (*entity.Rule, error)

	// Delete removes a rule, checking ownership.
	Delete(ctx context.Context, userID, ruleID uuid.UUID) error
}
