package model

import (
	"time"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
)

// RuleModel mirrors the 'rules' table.
type RuleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RuleModel) TableName() string {
	return "rules"
}

// ToEntity converts the model to a domain entity.
func (m *RuleModel) ToEntity() *entity.Rule {
	return &entity.Rule{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// RuleModelFromEntity converts a domain entity to the model.
func RuleModelFromEntity(e *entity.Rule) *RuleModel {
	return &RuleModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Name:      e.Name,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
