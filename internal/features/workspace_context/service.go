package workspace_context

import (
	"strings"

	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	"picktask-backend/internal/features/tasks"
	users_models "picktask-backend/internal/features/users/models"
	workspaces_services "picktask-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
)

const (
	recentActivityLimit   = 10
	dashboardProjectLimit = 5
	completedColumnName   = "Done"
)

type WorkspaceContextService struct {
	workspaceService    *workspaces_services.WorkspaceService
	projectService      *projects.ProjectService
	taskService         *tasks.TaskService
	statusColumnService *status_columns.StatusColumnService
	auditLogService     *audit_logs.AuditLogService
}

// GetDashboard summarizes the resolved workspace. Without a workspace only
// the (empty) workspace list is returned.
func (s *WorkspaceContextService) GetDashboard(resolved *ResolvedContext) (*DashboardResponse, error) {
	response := &DashboardResponse{
		Workspaces:       resolved.Workspaces,
		CurrentWorkspace: resolved.Workspace,
		CurrentProject:   resolved.Project,
		Projects:         make([]*projects.Project, 0),
		RecentActivities: make([]*audit_logs.AuditLogDTO, 0),
	}

	if resolved.Workspace == nil {
		return response, nil
	}

	workspaceID := resolved.Workspace.ID
	response.UserRole = &resolved.Membership.Role

	workspaceProjects, err := s.projectService.GetWorkspaceProjects(workspaceID)
	if err != nil {
		return nil, err
	}
	if len(workspaceProjects) > dashboardProjectLimit {
		workspaceProjects = workspaceProjects[:dashboardProjectLimit]
	}
	response.Projects = workspaceProjects

	response.TotalTasks, err = s.taskService.CountWorkspaceTasks(workspaceID, nil)
	if err != nil {
		return nil, err
	}

	columns, err := s.getColumnCounts(workspaceID, nil)
	if err != nil {
		return nil, err
	}

	for _, column := range columns {
		if strings.EqualFold(column.Column.Name, completedColumnName) {
			response.CompletedTasks += column.TaskCount
		}
	}

	response.RecentActivities, err = s.auditLogService.GetRecentWorkspaceActivity(
		workspaceID,
		recentActivityLimit,
	)
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *WorkspaceContextService) GetWorkspaceDetails(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*WorkspaceDetailsResponse, error) {
	workspace, membership, err := s.workspaceService.RequireMembership(workspaceID, user)
	if err != nil {
		return nil, err
	}

	workspaceProjects, err := s.projectService.GetWorkspaceProjects(workspaceID)
	if err != nil {
		return nil, err
	}

	totalTasks, err := s.taskService.CountWorkspaceTasks(workspaceID, nil)
	if err != nil {
		return nil, err
	}

	recentActivities, err := s.auditLogService.GetRecentWorkspaceActivity(
		workspaceID,
		recentActivityLimit,
	)
	if err != nil {
		return nil, err
	}

	return &WorkspaceDetailsResponse{
		Workspace:        workspace,
		UserRole:         membership.Role,
		Projects:         workspaceProjects,
		TotalTasks:       totalTasks,
		RecentActivities: recentActivities,
	}, nil
}

func (s *WorkspaceContextService) GetProjectDashboard(
	workspaceID, projectID uuid.UUID,
	user *users_models.User,
) (*ProjectDashboardResponse, error) {
	workspace, _, err := s.workspaceService.RequireMembership(workspaceID, user)
	if err != nil {
		return nil, err
	}

	project, err := s.projectService.RequireProject(workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	columns, err := s.getColumnCounts(workspaceID, &project.ID)
	if err != nil {
		return nil, err
	}

	totalTasks, err := s.taskService.CountWorkspaceTasks(workspaceID, &project.ID)
	if err != nil {
		return nil, err
	}

	return &ProjectDashboardResponse{
		Workspace:  workspace,
		Project:    project,
		TotalTasks: totalTasks,
		Columns:    columns,
	}, nil
}

// SelectProject checks that the project can become the user's current one.
// The caller stores the selection in the session.
func (s *WorkspaceContextService) SelectProject(
	workspaceID, projectID uuid.UUID,
	user *users_models.User,
) (*projects.Project, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	return s.projectService.RequireProject(workspaceID, projectID)
}

func (s *WorkspaceContextService) getColumnCounts(
	workspaceID uuid.UUID,
	projectID *uuid.UUID,
) ([]*ColumnTaskCountDTO, error) {
	columns, err := s.statusColumnService.GetColumns(workspaceID)
	if err != nil {
		return nil, err
	}

	counts, err := s.taskService.CountTasksByColumn(workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	columnCounts := make([]*ColumnTaskCountDTO, 0, len(columns))
	for _, column := range columns {
		columnCounts = append(columnCounts, &ColumnTaskCountDTO{
			Column:    column,
			TaskCount: counts[column.ID],
		})
	}

	return columnCounts, nil
}
