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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	profileRepo repository.ProfileRepository
	ruleRepo    repository.RuleRepository
	mcpRepo     repository.MCPRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProfileRepo repository.ProfileRepository
	RuleRepo    repository.RuleRepository
	MCPRepo     repository.MCPRepository
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		profileRepo: params.ProfileRepo,
		ruleRepo:    params.RuleRepo,
		mcpRepo:     params.MCPRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the user's profiles, newest first, with references loaded.
func (srv *profileService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Profile, error) {
	return srv.profileRepo.FindByUserID(ctx, userID)
}

// Get returns one profile with references loaded, checking ownership.
func (srv *profileService) Get(ctx context.Context, userID, profileID uuid.UUID) (*entity.Profile, error) {
	profile, err := srv.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, err
	}
	if profile.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	return profile, nil
}

// Create persists a new profile and its reference sets in one transaction.
func (srv *profileService) Create(ctx context.Context, userID uuid.UUID, input usecase.SaveProfileInput) (*entity.Profile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.NewValidationError("Name is required")
	}

	var profileID uuid.UUID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		profile := &entity.Profile{
			UserID: userID,
			Name:   input.Name,
		}
		if err := profileRepo.Create(ctx, profile); err != nil {
			if errors.Is(err, repository.ErrProfileNameTaken) {
				return domainerrors.ErrProfileNameTaken
			}

			return err
		}
		profileID = profile.ID

		ruleIDs, mcpIDs, err := srv.filterOwnedReferences(ctx, repoFactory, userID, input)
		if err != nil {
			return err
		}

		return profileRepo.ReplaceAssociations(ctx, profile.ID, ruleIDs, mcpIDs)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Profile created", slog.Any("profileID", profileID), slog.Any("userID", userID))

	return srv.Get(ctx, userID, profileID)
}

// Update renames a profile and replaces its reference sets in one transaction,
// checking ownership.
func (srv *profileService) Update(ctx context.Context, userID, profileID uuid.UUID, input usecase.SaveProfileInput) (*entity.Profile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.NewValidationError("Name is required")
	}

	if _, err := srv.Get(ctx, userID, profileID); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		if err := profileRepo.UpdateName(ctx, profileID, input.Name); err != nil {
			if errors.Is(err, repository.ErrProfileNameTaken) {
				return domainerrors.ErrProfileNameTaken
			}

			return err
		}

		ruleIDs, mcpIDs, err := srv.filterOwnedReferences(ctx, repoFactory, userID, input)
		if err != nil {
			return err
		}

		return profileRepo.ReplaceAssociations(ctx, profileID, ruleIDs, mcpIDs)
	})
	if err != nil {
		return nil, err
	}

	return srv.Get(ctx, userID, profileID)
}

// Delete removes a profile, checking ownership. Membership rows cascade.
func (srv *profileService) Delete(ctx context.Context, userID, profileID uuid.UUID) error {
	if _, err := srv.Get(ctx, userID, profileID); err != nil {
		return err
	}

	return srv.profileRepo.Delete(ctx, profileID)
}

// filterOwnedReferences drops referenced rule and MCP ids the user does not
// own. Foreign ids are silently ignored rather than failing the whole save.
func (srv *profileService) filterOwnedReferences(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	userID uuid.UUID,
	input usecase.SaveProfileInput,
) ([]uuid.UUID, []uuid.UUID, error) {
	ownedRules, err := repoFactory.RuleRepo().FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	ownedMCPs, err := repoFactory.MCPRepo().FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	ruleSet := make(map[uuid.UUID]struct{}, len(ownedRules))
	for _, rule := range ownedRules {
		ruleSet[rule.ID] = struct{}{}
	}
	mcpSet := make(map[uuid.UUID]struct{}, len(ownedMCPs))
	for _, mcp := range ownedMCPs {
		mcpSet[mcp.ID] = struct{}{}
	}

	ruleIDs := make([]uuid.UUID, 0, len(input.RuleIDs))
	for _, id := range input.RuleIDs {
		if _, ok := ruleSet[id]; ok {
			ruleIDs = append(ruleIDs, id)
		}
	}
	mcpIDs := make([]uuid.UUID, 0, len(input.MCPIDs))
	for _, id := range input.MCPIDs {
		if _, ok := mcpSet[id]; ok {
			mcpIDs = append(mcpIDs, id)
		}
	}

	return ruleIDs, mcpIDs, nil
}
