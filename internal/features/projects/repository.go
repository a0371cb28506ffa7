package projects

import (
	"errors"
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) Create(tx *gorm.DB, project *Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	return tx.Create(project).Error
}

func (r *ProjectRepository) Save(tx *gorm.DB, project *Project) error {
	return tx.Save(project).Error
}

// FindByID looks the project up within its workspace. It returns nil when the
// project does not exist or belongs to another workspace.
func (r *ProjectRepository) FindByID(workspaceID, projectID uuid.UUID) (*Project, error) {
	var project Project

	if err := storage.GetDb().
		Where("id = ? AND workspace_id = ?", projectID, workspaceID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) FindByWorkspaceID(workspaceID uuid.UUID) ([]*Project, error) {
	projects := make([]*Project, 0)

	if err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *ProjectRepository) FindByIDs(ids []uuid.UUID) ([]*Project, error) {
	projects := make([]*Project, 0)
	if len(ids) == 0 {
		return projects, nil
	}

	if err := storage.GetDb().Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *ProjectRepository) GetIDsByWorkspace(tx *gorm.DB, workspaceID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)

	if err := tx.Model(&Project{}).
		Where("workspace_id = ?", workspaceID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *ProjectRepository) Delete(tx *gorm.DB, projectID uuid.UUID) error {
	return tx.Where("id = ?", projectID).Delete(&Project{}).Error
}

func (r *ProjectRepository) DeleteByWorkspace(tx *gorm.DB, workspaceID uuid.UUID) error {
	return tx.Where("workspace_id = ?", workspaceID).Delete(&Project{}).Error
}
