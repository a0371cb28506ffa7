package workspaces_repositories

import (
	"time"

	workspaces_models "picktask-backend/internal/features/workspaces/models"
	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct{}

func (r *WorkspaceRepository) CreateWorkspace(
	tx *gorm.DB,
	workspace *workspaces_models.Workspace,
) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}

	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = time.Now().UTC()
	}

	return tx.Create(workspace).Error
}

// GetWorkspaceByID returns nil when the workspace does not exist.
func (r *WorkspaceRepository) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := storage.GetDb().Where("id = ?", workspaceID).First(&workspace).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) GetWorkspacesByIDs(
	workspaceIDs []uuid.UUID,
) ([]*workspaces_models.Workspace, error) {
	workspaces := make([]*workspaces_models.Workspace, 0)
	if len(workspaceIDs) == 0 {
		return workspaces, nil
	}

	err := storage.GetDb().Where("id IN ?", workspaceIDs).Find(&workspaces).Error

	return workspaces, err
}

func (r *WorkspaceRepository) UpdateWorkspace(
	tx *gorm.DB,
	workspace *workspaces_models.Workspace,
) error {
	return tx.Save(workspace).Error
}

func (r *WorkspaceRepository) DeleteWorkspace(tx *gorm.DB, workspaceID uuid.UUID) error {
	return tx.Where("id = ?", workspaceID).Delete(&workspaces_models.Workspace{}).Error
}
