package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/domain/repository"
	"guidemyai/internal/infra/persistence/model"
)

// credentialRepository implements the domain's CredentialRepository interface using GORM.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// FindByProvider retrieves the credential for a provider/provider-user pair.
func (repo *credentialRepository) FindByProvider(ctx context.Context, provider, providerUserID string) (*entity.Credential, error) {
	var credM model.CredentialModel
	err := repo.db.WithContext(ctx).
		First(&credM, "provider = ? AND provider_user_id = ?", provider, providerUserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by provider")
	}

	return credM.ToEntity(), nil
}

// Create persists a new credential.
func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	credM := model.CredentialModelFromEntity(credential)

	if err := repo.db.WithContext(ctx).Create(credM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken
		}

		return domainerrors.NewDatabaseExecuteError(err)
	}

	credential.ID = credM.ID
	credential.CreatedAt = credM.CreatedAt

	return nil
}
