package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "guidemyai/internal/delivery/context"
	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/domain/repository"
	"guidemyai/internal/usecase"
)

// ruleService implements the RuleUsecase interface.
type ruleService struct {
	ruleRepo repository.RuleRepository
	logger   *slog.Logger
}

// RuleServiceParams holds dependencies for ruleService, injected by Fx.
type RuleServiceParams struct {
	fx.In

	RuleRepo repository.RuleRepository
	Logger   *slog.Logger
}

// NewRuleService is the constructor for ruleService.
func NewRuleService(params RuleServiceParams) usecase.RuleUsecase {
	return &ruleService{
		ruleRepo: params.RuleRepo,
		logger:   params.Logger,
	}
}

func (srv *ruleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateRuleInput(input usecase.RuleInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.NewValidationError("Name is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return domainerrors.NewValidationError("Content is required")
	}

	return nil
}

// List returns the user's rules, newest first.
func (srv *ruleService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	return srv.ruleRepo.FindByUserID(ctx, userID)
}

// Get returns one rule, checking ownership.
func (srv *ruleService) Get(ctx context.Context, userID, ruleID uuid.UUID) (*entity.Rule, error) {
	rule, err := srv.ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, repository.ErrRuleNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, err
	}
	if rule.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	return rule, nil
}

// Create validates and persists a new rule.
func (srv *ruleService) Create(ctx context.Context, userID uuid.UUID, input usecase.RuleInput) (*entity.Rule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	rule := &entity.Rule{
		UserID:  userID,
		Name:    input.Name,
		Content: input.Content,
	}
	if err := srv.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Rule created", slog.Any("ruleID", rule.ID), slog.Any("userID", userID))

	return rule, nil
}

// Update validates and modifies an existing rule, checking ownership.
func (srv *ruleService) Update(ctx context.Context, userID, ruleID uuid.UUID, input usecase.RuleInput) (*entity.Rule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	rule, err := srv.Get(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}

	rule.Name = input.Name
	rule.Content = input.Content
	if err := srv.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// Delete removes a rule, checking ownership.
func (srv *ruleService) Delete(ctx context.Context, userID, ruleID uuid.UUID) error {
	if _, err := srv.Get(ctx, userID, ruleID); err != nil {
		return err
	}

	return srv.ruleRepo.Delete(ctx, ruleID)
}
