package tasks

import (
	"time"

	"github.com/google/uuid"
)

const dueDateLayout = "2006-01-02"

type CreateTaskRequest struct {
	Title          string       `json:"title"     binding:"required,max=200"`
	Description    string       `json:"description"`
	ProjectID      uuid.UUID    `json:"projectId" binding:"required"`
	StatusColumnID *uuid.UUID   `json:"statusColumnId"`
	Priority       TaskPriority `json:"priority"`
	AssigneeID     *uuid.UUID   `json:"assigneeId"`
	DueDate        string       `json:"dueDate"`
}

// UpdateTaskRequest changes only the fields that are present. An empty
// assigneeId or dueDate clears the value.
type UpdateTaskRequest struct {
	Title          *string       `json:"title"`
	Description    *string       `json:"description"`
	ProjectID      *uuid.UUID    `json:"projectId"`
	StatusColumnID *uuid.UUID    `json:"statusColumnId"`
	Priority       *TaskPriority `json:"priority"`
	AssigneeID     *string       `json:"assigneeId"`
	DueDate        *string       `json:"dueDate"`
}

type TaskDTO struct {
	ID               uuid.UUID    `json:"id"               gorm:"column:id"`
	ProjectID        uuid.UUID    `json:"projectId"        gorm:"column:project_id"`
	ProjectName      string       `json:"projectName"      gorm:"column:project_name"`
	Title            string       `json:"title"            gorm:"column:title"`
	Description      string       `json:"description"      gorm:"column:description"`
	StatusColumnID   *uuid.UUID   `json:"statusColumnId"   gorm:"column:status_column_id"`
	StatusColumnName *string      `json:"statusColumnName" gorm:"column:status_column_name"`
	Priority         TaskPriority `json:"priority"         gorm:"column:priority"`
	AssigneeID       *uuid.UUID   `json:"assigneeId"       gorm:"column:assignee_id"`
	AssigneeUsername *string      `json:"assigneeUsername" gorm:"column:assignee_username"`
	DueDate          *time.Time   `json:"dueDate"          gorm:"column:due_date"`
	CreatedBy        uuid.UUID    `json:"createdBy"        gorm:"column:created_by"`
	CreatedAt        time.Time    `json:"createdAt"        gorm:"column:created_at"`
	UpdatedAt        time.Time    `json:"updatedAt"        gorm:"column:updated_at"`
}

type ColumnTaskCount struct {
	StatusColumnID *uuid.UUID `gorm:"column:status_column_id"`
	Count          int64      `gorm:"column:task_count"`
}

// TaskFilter narrows workspace task listings. Nil fields match everything.
type TaskFilter struct {
	ProjectID  *uuid.UUID
	AssigneeID *uuid.UUID
}
