package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "guidemyai/internal/delivery/context"
	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/domain/repository"
	"guidemyai/internal/usecase"
)

// mcpService implements the MCPUsecase interface.
type mcpService struct {
	mcpRepo repository.MCPRepository
	logger  *slog.Logger
}

// MCPServiceParams holds dependencies for mcpService, injected by Fx.
type MCPServiceParams struct {
	fx.In

	MCPRepo repository.MCPRepository
	Logger  *slog.Logger
}

// NewMCPService is the constructor for mcpService.
func NewMCPService(params MCPServiceParams) usecase.MCPUsecase {
	return &mcpService{
		mcpRepo: params.MCPRepo,
		logger:  params.Logger,
	}
}

func (srv *mcpService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateMCPInput(input usecase.MCPInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.NewValidationError("Name is required")
	}
	if err := entity.ValidateContext(input.Context); err != nil {
		return domainerrors.NewValidationError(err.Error())
	}

	return nil
}

// List returns the user's MCPs, newest first.
func (srv *mcpService) List(ctx context.Context, userID uuid.UUID) ([]*entity.MCP, error) {
	return srv.mcpRepo.FindByUserID(ctx, userID)
}

// Get returns one MCP, checking ownership.
func (srv *mcpService) Get(ctx context.Context, userID, mcpID uuid.UUID) (*entity.MCP, error) {
	mcp, err := srv.mcpRepo.FindByID(ctx, mcpID)
	if err != nil {
		if errors.Is(err, repository.ErrMCPNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, err
	}
	if mcp.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	return mcp, nil
}

// Create validates the context document and persists a new MCP.
func (srv *mcpService) Create(ctx context.Context, userID uuid.UUID, input usecase.MCPInput) (*entity.MCP, error) {
	if err := validateMCPInput(input); err != nil {
		return nil, err
	}

	mcp := &entity.MCP{
		UserID:  userID,
		Name:    input.Name,
		Context: input.Context,
	}
	if err := srv.mcpRepo.Create(ctx, mcp); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("MCP created", slog.Any("mcpID", mcp.ID), slog.Any("userID", userID))

	return mcp, nil
}

// Update validates and modifies an existing MCP, checking ownership.
func (srv *mcpService) Update(ctx context.Context, userID, mcpID uuid.UUID, input usecase.MCPInput) (*entity.MCP, error) {
	if err := validateMCPInput(input); err != nil {
		return nil, err
	}

	mcp, err := srv.Get(ctx, userID, mcpID)
	if err != nil {
		return nil, err
	}

	mcp.Name = input.Name
	mcp.Context = input.Context
	if err := srv.mcpRepo.Update(ctx, mcp); err != nil {
		return nil, err
	}

	return mcp, nil
}

// Delete removes an MCP, checking ownership.
func (srv *mcpService) Delete(ctx context.Context, userID, mcpID uuid.UUID) error {
	if _, err := srv.Get(ctx, userID, mcpID); err != nil {
		return err
	}

	return srv.mcpRepo.Delete(ctx, mcpID)
}
