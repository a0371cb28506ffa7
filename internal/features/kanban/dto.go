package kanban

import (
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	"picktask-backend/internal/features/tasks"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
)

type ColumnAction string

const (
	ColumnActionAdd    ColumnAction = "add"
	ColumnActionRename ColumnAction = "rename"
	ColumnActionDelete ColumnAction = "delete"
)

// Ids are strings so that the same request works for JSON bodies and form
// posts from the board.
type UpdateTaskStatusRequest struct {
	TaskID         string `json:"task_id"          form:"task_id"`
	StatusColumnID string `json:"status_column_id" form:"status_column_id"`
}

type UpdateTaskStatusResponse struct {
	Success   bool   `json:"success"`
	TaskTitle string `json:"task_title"`
	OldColumn string `json:"old_column"`
	NewColumn string `json:"new_column"`
}

type QuickCreateTaskRequest struct {
	Title          string `json:"title"            form:"title"`
	ProjectID      string `json:"project_id"       form:"project_id"`
	StatusColumnID string `json:"status_column_id" form:"status_column_id"`
}

type QuickCreateTaskResponse struct {
	Success bool           `json:"success"`
	Task    *tasks.TaskDTO `json:"task"`
}

type ManageColumnsRequest struct {
	Action   ColumnAction `json:"action"`
	Name     string       `json:"name"`
	ColumnID string       `json:"column_id"`
}

type ManageColumnsResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BoardColumnDTO struct {
	Column *status_columns.StatusColumn `json:"column"`
	Tasks  []*tasks.TaskDTO             `json:"tasks"`
}

type BoardResponse struct {
	Workspace      *workspaces_models.Workspace `json:"workspace"`
	Projects       []*projects.Project          `json:"projects"`
	CurrentProject *projects.Project            `json:"currentProject"`
	Columns        []*BoardColumnDTO            `json:"columns"`
	// tasks without a status column
	UnsortedTasks []*tasks.TaskDTO `json:"unsortedTasks"`
	HasProjects   bool             `json:"hasProjects"`
}
