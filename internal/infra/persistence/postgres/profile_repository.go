package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/domain/repository"
	"guidemyai/internal/infra/persistence/model"
)

// profileRepository implements the domain's ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUserID retrieves all profiles owned by a user, newest first, with
// their rule and MCP references loaded.
func (repo *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Profile, error) {
	var profileMs []model.ProfileModel
	err := repo.db.WithContext(ctx).
		Preload("Rules").
		Preload("MCPs").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&profileMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}

	profiles := make([]*entity.Profile, 0, len(profileMs))
	for i := range profileMs {
		profiles = append(profiles, profileMs[i].ToEntity())
	}

	return profiles, nil
}

// FindByID retrieves a single profile by id with references loaded.
func (repo *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	err := repo.db.WithContext(ctx).
		Preload("Rules").
		Preload("MCPs").
		First(&profileM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by id")
	}

	return profileM.ToEntity(), nil
}

// Create persists a new profile with no references. A (user_id, name)
// collision reports ErrProfileNameTaken.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := model.ProfileModelFromEntity(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrProfileNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(err)
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// UpdateName renames an existing profile.
func (repo *profileRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrProfileNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// Delete removes a profile by id. Membership rows cascade at the database level.
func (repo *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProfileModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// ReplaceAssociations replaces the full rule and MCP membership of a profile
// with the given sets. Existing rows are deleted and the new sets inserted;
// callers run this inside txManager.Execute so the swap is atomic.
func (repo *profileRepository) ReplaceAssociations(ctx context.Context, profileID uuid.UUID, ruleIDs, mcpIDs []uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Delete(&model.ProfileRuleModel{}, "profile_id = ?", profileID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err)
	}
	if err := db.Delete(&model.ProfileMCPModel{}, "profile_id = ?", profileID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err)
	}

	if len(ruleIDs) > 0 {
		rows := make([]model.ProfileRuleModel, 0, len(ruleIDs))
		for _, ruleID := range ruleIDs {
			rows = append(rows, model.ProfileRuleModel{ProfileID: profileID, RuleID: ruleID})
		}
		if err := db.Create(&rows).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrRuleNotFound
			}

			return domainerrors.NewDatabaseExecuteError(err)
		}
	}

	if len(mcpIDs) > 0 {
		rows := make([]model.ProfileMCPModel, 0, len(mcpIDs))
		for _, mcpID := range mcpIDs {
			rows = append(rows, model.ProfileMCPModel{ProfileID: profileID, McpID: mcpID})
		}
		if err := db.Create(&rows).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrMCPNotFound
			}

			return domainerrors.NewDatabaseExecuteError(err)
		}
	}

	return nil
}
