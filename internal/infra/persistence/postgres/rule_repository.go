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

// ruleRepository implements the domain's RuleRepository interface using GORM.
type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository is the constructor for ruleRepository.
func NewRuleRepository(db *gorm.DB) repository.RuleRepository {
	return &ruleRepository{db: db}
}

// FindByUserID retrieves all rules owned by a user, newest first.
func (repo *ruleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Rule, error) {
	var ruleMs []model.RuleModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ruleMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rules")
	}

	rules := make([]*entity.Rule, 0, len(ruleMs))
	for i := range ruleMs {
		rules = append(rules, ruleMs[i].ToEntity())
	}

	return rules, nil
}

// FindByID retrieves a single rule by id.
func (repo *ruleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rule, error) {
	var ruleM model.RuleModel
	if err := repo.db.WithContext(ctx).First(&ruleM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRuleNotFound
		}

		return nil, errors.Wrap(err, "failed to find rule by id")
	}

	return ruleM.ToEntity(), nil
}

// Create persists a new rule.
func (repo *ruleRepository) Create(ctx context.Context, rule *entity.Rule) error {
	ruleM := model.RuleModelFromEntity(rule)

	if err := repo.db.WithContext(ctx).Create(ruleM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err)
	}

	rule.ID = ruleM.ID
	rule.CreatedAt = ruleM.CreatedAt
	rule.UpdatedAt = ruleM.UpdatedAt

	return nil
}

// Update modifies an existing rule's name and content.
func (repo *ruleRepository) Update(ctx context.Context, rule *entity.Rule) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RuleModel{}).
		Where("id = ?", rule.ID).
		Updates(map[string]any{
			"name":    rule.Name,
			"content": rule.Content,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRuleNotFound
	}

	return nil
}

// Delete removes a rule by id.
func (repo *ruleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.RuleModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRuleNotFound
	}

	return nil
}
