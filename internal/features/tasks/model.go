package tasks

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

type Task struct {
	ID             uuid.UUID    `json:"id"             gorm:"column:id;primaryKey"`
	ProjectID      uuid.UUID    `json:"projectId"      gorm:"column:project_id;index"`
	Title          string       `json:"title"          gorm:"column:title"`
	Description    string       `json:"description"    gorm:"column:description"`
	StatusColumnID *uuid.UUID   `json:"statusColumnId" gorm:"column:status_column_id;index"`
	Priority       TaskPriority `json:"priority"       gorm:"column:priority"`
	AssigneeID     *uuid.UUID   `json:"assigneeId"     gorm:"column:assignee_id"`
	DueDate        *time.Time   `json:"dueDate"        gorm:"column:due_date"`
	CreatedBy      uuid.UUID    `json:"createdBy"      gorm:"column:created_by"`
	CreatedAt      time.Time    `json:"createdAt"      gorm:"column:created_at"`
	UpdatedAt      time.Time    `json:"updatedAt"      gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

func init() {
	storage.RegisterModels(&Task{})
}
