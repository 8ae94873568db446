package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a named bundle of Rule and MCP references belonging to one user.
// Membership is a set: order carries no meaning and is replaced wholesale, not
// edited incrementally.
type Profile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Rules     []*Rule
	MCPs      []*MCP
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RuleIDs returns the ids of the referenced rules.
func (p *Profile) RuleIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Rules))
	for _, r := range p.Rules {
		ids = append(ids, r.ID)
	}

	return ids
}

// MCPIDs returns the ids of the referenced MCPs.
func (p *Profile) MCPIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.MCPs))
	for _, m := range p.MCPs {
		ids = append(ids, m.ID)
	}

	return ids
}
