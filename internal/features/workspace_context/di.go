package workspace_context

import (
	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/sessions"
	"picktask-backend/internal/features/status_columns"
	"picktask-backend/internal/features/tasks"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
)

var contextResolver = &ContextResolver{
	workspaces_services.GetWorkspaceService(),
	projects.GetProjectService(),
	sessions.GetSessionStore(),
}
var workspaceContextService = &WorkspaceContextService{
	workspaces_services.GetWorkspaceService(),
	projects.GetProjectService(),
	tasks.GetTaskService(),
	status_columns.GetStatusColumnService(),
	audit_logs.GetAuditLogService(),
}
var workspaceContextController = &WorkspaceContextController{
	workspaceContextService,
	contextResolver,
}

func GetContextResolver() *ContextResolver {
	return contextResolver
}

func GetWorkspaceContextService() *WorkspaceContextService {
	return workspaceContextService
}

func GetWorkspaceContextController() *WorkspaceContextController {
	return workspaceContextController
}
