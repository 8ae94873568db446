package model

import (
	"time"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
)

// MCPModel mirrors the 'mcps' table. Context stores the raw JSON document;
// validation happens before rows get here, so the column is plain text.
type MCPModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Context   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (MCPModel) TableName() string {
	return "mcps"
}

// ToEntity converts the model to a domain entity.
func (m *MCPModel) ToEntity() *entity.MCP {
	return &entity.MCP{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Context:   m.Context,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MCPModelFromEntity converts a domain entity to the model.
func MCPModelFromEntity(e *entity.MCP) *MCPModel {
	return &MCPModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Name:      e.Name,
		Context:   e.Context,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
