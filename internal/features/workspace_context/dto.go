package workspace_context

import (
	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/sessions"
	"picktask-backend/internal/features/status_columns"
	users_enums "picktask-backend/internal/features/users/enums"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
)

type DashboardResponse struct {
	Workspaces       []*WorkspaceChoiceDTO        `json:"workspaces"`
	CurrentWorkspace *workspaces_models.Workspace `json:"currentWorkspace"`
	UserRole         *users_enums.WorkspaceRole   `json:"userRole"`
	CurrentProject   *projects.Project            `json:"currentProject"`
	Projects         []*projects.Project          `json:"projects"`
	TotalTasks       int64                        `json:"totalTasks"`
	CompletedTasks   int64                        `json:"completedTasks"`
	RecentActivities []*audit_logs.AuditLogDTO    `json:"recentActivities"`
	Messages         []sessions.FlashMessage      `json:"messages"`
}

type WorkspaceDetailsResponse struct {
	Workspace        *workspaces_models.Workspace `json:"workspace"`
	UserRole         users_enums.WorkspaceRole    `json:"userRole"`
	Projects         []*projects.Project          `json:"projects"`
	TotalTasks       int64                        `json:"totalTasks"`
	RecentActivities []*audit_logs.AuditLogDTO    `json:"recentActivities"`
}

type ColumnTaskCountDTO struct {
	Column    *status_columns.StatusColumn `json:"column"`
	TaskCount int64                        `json:"taskCount"`
}

type ProjectDashboardResponse struct {
	Workspace  *workspaces_models.Workspace `json:"workspace"`
	Project    *projects.Project            `json:"project"`
	TotalTasks int64                        `json:"totalTasks"`
	Columns    []*ColumnTaskCountDTO        `json:"columns"`
}

type SelectProjectResponse struct {
	Message string            `json:"message"`
	Project *projects.Project `json:"project"`
}
