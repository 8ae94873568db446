package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/domain/repository"
	"guidemyai/internal/infra/persistence/model"
)

// sessionRepository implements the domain's SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := model.SessionModelFromEntity(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err)
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByToken retrieves a session by its opaque token. An expired session is
// deleted on sight and reported as ErrSessionExpired.
func (repo *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).First(&sessionM, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by token")
	}

	session := sessionM.ToEntity()
	if session.Expired(time.Now()) {
		repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "token = ?", token)

		return nil, repository.ErrSessionExpired
	}

	return session, nil
}

// DeleteByToken removes a single session. Deleting a missing token is not an error.
func (repo *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "token = ?", token).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err)
	}

	return nil
}

// DeleteExpired removes all sessions past their expiry.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "expires_at <= ?", time.Now()).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err)
	}

	return nil
}
