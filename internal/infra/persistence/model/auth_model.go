package model

import (
	"time"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
)

// CredentialModel mirrors the 'user_credentials' table. One row per login
// method a user has registered.
type CredentialModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null"`
	Provider       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_credentials_provider_provider_user_id"`
	ProviderUserID string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_credentials_provider_provider_user_id"`
	PasswordHash   string    `gorm:"type:varchar(255)"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "user_credentials"
}

// ToEntity converts the model to a domain entity.
func (m *CredentialModel) ToEntity() *entity.Credential {
	return &entity.Credential{
		ID:             m.ID,
		UserID:         m.UserID,
		Provider:       m.Provider,
		ProviderUserID: m.ProviderUserID,
		PasswordHash:   m.PasswordHash,
		CreatedAt:      m.CreatedAt,
	}
}

// CredentialModelFromEntity converts a domain entity to the model.
func CredentialModelFromEntity(e *entity.Credential) *CredentialModel {
	return &CredentialModel{
		ID:             e.ID,
		UserID:         e.UserID,
		Provider:       e.Provider,
		ProviderUserID: e.ProviderUserID,
		PasswordHash:   e.PasswordHash,
		CreatedAt:      e.CreatedAt,
	}
}

// SessionModel mirrors the 'sessions' table. The token column is the bearer
// secret and carries a unique index for lookup.
type SessionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);unique;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// ToEntity converts the model to a domain entity.
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

// SessionModelFromEntity converts a domain entity to the model.
func SessionModelFromEntity(e *entity.Session) *SessionModel {
	return &SessionModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Token:     e.Token,
		ExpiresAt: e.ExpiresAt,
		CreatedAt: e.CreatedAt,
	}
}
