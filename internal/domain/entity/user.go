// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity record. Every Rule, MCP and Profile belongs to
// exactly one User and is removed with it.
type User struct {
	ID        uuid.UUID // The unique identifier for the user.
	Email     string    // The user's login identifier.
	Name      string    // The user's display name, shown in the page header.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}
