package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rule is a named text snippet owned by one user.
type Rule struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
