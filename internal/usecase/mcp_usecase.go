package usecase

import (
	"context"

	"github.com/google/uuid"

	"guidemyai/internal/domain/entity"
)

// MCPInput defines the data for creating or updating an MCP configuration.
type MCPInput struct {
	Name    string
	Context string
}

// MCPUsecase defines the MCP operations, each scoped to the calling user.
type MCPUsecase interface {
	// List returns the user's MCPs, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*entity.MCP, error)

	// Get returns one MCP, checking ownership.
	Get(ctx context.Context, userID, mcpID uuid.UUID) (*entity.MCP, error)

	// Create validates the context document and persists a new MCP.
	Create(ctx context.Context, userID uuid.UUID, input MCPInput) (*entity.MCP, error)

	// Update validates and modifies an existing MCP, checking ownership.
	Update(ctx context.Context, userID, mcpID uuid.UUID, input MCPInput) (*entity.MCP, error)

	// Delete removes an MCP, checking ownership.
	Delete(ctx context.Context, userID, mcpID uuid.UUID) error
}
