package repository

import (
	"context"
	"errors"

	"guidemyai/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMCPNotFound is returned when an MCP id does not exist.
var ErrMCPNotFound = errors.New("mcp not found")

// MCPRepository defines the operations for MCP persistence.
type MCPRepository interface {
	// FindByUserID retrieves all MCPs owned by a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.MCP, error)

	// FindByID retrieves a single MCP by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MCP, error)

	// Create persists a new MCP.
	Create(ctx context.Context, mcp *entity.MCP) error

	// Update modifies an existing MCP.
	Update(ctx context.Context, mcp *entity.MCP) error

	// Delete removes an MCP by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
