package tasks

import (
	"errors"
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

func (r *TaskRepository) Create(tx *gorm.DB, task *Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	return tx.Create(task).Error
}

func (r *TaskRepository) Save(tx *gorm.DB, task *Task) error {
	task.UpdatedAt = time.Now().UTC()
	return tx.Save(task).Error
}

// FindByID scopes the lookup to the workspace through the task's project and
// returns nil when nothing matches.
func (r *TaskRepository) FindByID(tx *gorm.DB, workspaceID, taskID uuid.UUID) (*Task, error) {
	var task Task

	if err := tx.
		Joins("JOIN projects p ON p.id = tasks.project_id").
		Where("tasks.id = ? AND p.workspace_id = ?", taskID, workspaceID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) GetDetails(workspaceID, taskID uuid.UUID) (*TaskDTO, error) {
	tasks, err := r.findDetails(
		r.detailsQuery(workspaceID).Where("t.id = ?", taskID),
	)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	return tasks[0], nil
}

func (r *TaskRepository) GetByWorkspace(workspaceID uuid.UUID, filter *TaskFilter) ([]*TaskDTO, error) {
	query := r.detailsQuery(workspaceID)

	if filter != nil && filter.ProjectID != nil {
		query = query.Where("t.project_id = ?", *filter.ProjectID)
	}

	if filter != nil && filter.AssigneeID != nil {
		query = query.Where("t.assignee_id = ?", *filter.AssigneeID)
	}

	return r.findDetails(query)
}

func (r *TaskRepository) CountByWorkspace(workspaceID uuid.UUID, projectID *uuid.UUID) (int64, error) {
	var total int64

	query := storage.GetDb().
		Table("tasks t").
		Joins("JOIN projects p ON p.id = t.project_id").
		Where("p.workspace_id = ?", workspaceID)

	if projectID != nil {
		query = query.Where("t.project_id = ?", *projectID)
	}

	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func (r *TaskRepository) CountByColumn(
	workspaceID uuid.UUID,
	projectID *uuid.UUID,
) ([]*ColumnTaskCount, error) {
	counts := make([]*ColumnTaskCount, 0)

	query := storage.GetDb().
		Table("tasks t").
		Select("t.status_column_id AS status_column_id, COUNT(*) AS task_count").
		Joins("JOIN projects p ON p.id = t.project_id").
		Where("p.workspace_id = ?", workspaceID)

	if projectID != nil {
		query = query.Where("t.project_id = ?", *projectID)
	}

	if err := query.Group("t.status_column_id").Scan(&counts).Error; err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *TaskRepository) UpdateStatusColumn(tx *gorm.DB, taskID, columnID uuid.UUID) error {
	return tx.Model(&Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"status_column_id": columnID,
			"updated_at":       time.Now().UTC(),
		}).Error
}

func (r *TaskRepository) ReassignColumn(tx *gorm.DB, fromColumnID, toColumnID uuid.UUID) (int64, error) {
	result := tx.Model(&Task{}).
		Where("status_column_id = ?", fromColumnID).
		Updates(map[string]any{
			"status_column_id": toColumnID,
			"updated_at":       time.Now().UTC(),
		})

	return result.RowsAffected, result.Error
}

func (r *TaskRepository) GetIDsByProject(tx *gorm.DB, projectID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)

	if err := tx.Model(&Task{}).Where("project_id = ?", projectID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *TaskRepository) DeleteByIDs(tx *gorm.DB, taskIDs []uuid.UUID) error {
	if len(taskIDs) == 0 {
		return nil
	}

	return tx.Where("id IN ?", taskIDs).Delete(&Task{}).Error
}

func (r *TaskRepository) detailsQuery(workspaceID uuid.UUID) *gorm.DB {
	return storage.GetDb().
		Table("tasks t").
		Select(`
			t.id,
			t.project_id,
			p.name AS project_name,
			t.title,
			t.description,
			t.status_column_id,
			sc.name AS status_column_name,
			t.priority,
			t.assignee_id,
			u.username AS assignee_username,
			t.due_date,
			t.created_by,
			t.created_at,
			t.updated_at
		`).
		Joins("JOIN projects p ON p.id = t.project_id").
		Joins("LEFT JOIN status_columns sc ON sc.id = t.status_column_id").
		Joins("LEFT JOIN users u ON u.id = t.assignee_id").
		Where("p.workspace_id = ?", workspaceID)
}

func (r *TaskRepository) findDetails(query *gorm.DB) ([]*TaskDTO, error) {
	tasks := make([]*TaskDTO, 0)

	if err := query.Order("t.created_at DESC").Scan(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}
