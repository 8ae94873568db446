package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"guidemyai/internal/domain/entity"
	domainerrors "guidemyai/internal/domain/errors"
	"guidemyai/internal/domain/repository"
	"guidemyai/internal/infra/persistence/model"
)

// mcpRepository implements the domain's MCPRepository interface using GORM.
type mcpRepository struct {
	db *gorm.DB
}

// NewMCPRepository is the constructor for mcpRepository.
func NewMCPRepository(db *gorm.DB) repository.MCPRepository {
	return &mcpRepository{db: db}
}

// FindByUserID retrieves all MCPs owned by a user, newest first.
func (repo *mcpRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.MCP, error) {
	var mcpMs []model.MCPModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&mcpMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list mcps")
	}

	mcps := make([]*entity.MCP, 0, len(mcpMs))
	for i := range mcpMs {
		mcps = append(mcps, mcpMs[i].ToEntity())
	}

	return mcps, nil
}

// FindByID retrieves a single MCP by id.
func (repo *mcpRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MCP, error) {
	var mcpM model.MCPModel
	if err := repo.db.WithContext(ctx).First(&mcpM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMCPNotFound
		}

		return nil, errors.Wrap(err, "failed to find mcp by id")
	}

	return mcpM.ToEntity(), nil
}

// Create persists a new MCP.
func (repo *mcpRepository) Create(ctx context.Context, mcp *entity.MCP) error {
	mcpM := model.MCPModelFromEntity(mcp)

	if err := repo.db.WithContext(ctx).Create(mcpM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err)
	}

	mcp.ID = mcpM.ID
	mcp.CreatedAt = mcpM.CreatedAt
	mcp.UpdatedAt = mcpM.UpdatedAt

	return nil
}

// Update modifies an existing MCP's name and context document.
func (repo *mcpRepository) Update(ctx context.Context, mcp *entity.MCP) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MCPModel{}).
		Where("id = ?", mcp.ID).
		Updates(map[string]any{
			"name":    mcp.Name,
			"context": mcp.Context,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrMCPNotFound
	}

	return nil
}

// Delete removes an MCP by id.
func (repo *mcpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.MCPModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrMCPNotFound
	}

	return nil
}
