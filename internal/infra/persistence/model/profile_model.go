package model

import (
	"time"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
)

// ProfileModel mirrors the 'profiles' table. Rules and MCPs are joined through
// explicit join tables so membership can be replaced wholesale.
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_profiles_user_id_name"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_profiles_user_id_name"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Rules []RuleModel `gorm:"many2many:profile_rules;joinForeignKey:ProfileID;joinReferences:RuleID"`
	MCPs  []MCPModel  `gorm:"many2many:profile_mcps;joinForeignKey:ProfileID;joinReferences:McpID"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts the model and its loaded associations to a domain entity.
func (m *ProfileModel) ToEntity() *entity.Profile {
	profile := &entity.Profile{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Rules:     make([]*entity.Rule, 0, len(m.Rules)),
		MCPs:      make([]*entity.MCP, 0, len(m.MCPs)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	for i := range m.Rules {
		profile.Rules = append(profile.Rules, m.Rules[i].ToEntity())
	}
	for i := range m.MCPs {
		profile.MCPs = append(profile.MCPs, m.MCPs[i].ToEntity())
	}

	return profile
}

// ProfileModelFromEntity converts a domain entity to the model. Associations
// are managed through the join models, not through this conversion.
func ProfileModelFromEntity(e *entity.Profile) *ProfileModel {
	return &ProfileModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ProfileRuleModel mirrors the 'profile_rules' join table.
type ProfileRuleModel struct {
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RuleID    uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileRuleModel) TableName() string {
	return "profile_rules"
}

// ProfileMCPModel mirrors the 'profile_mcps' join table.
type ProfileMCPModel struct {
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey"`
	McpID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileMCPModel) TableName() string {
	return "profile_mcps"
}
