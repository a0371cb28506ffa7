package kanban

import (
	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	"picktask-backend/internal/features/tasks"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
)

var kanbanService = &KanbanService{
	workspaces_services.GetWorkspaceService(),
	projects.GetProjectService(),
	tasks.GetTaskService(),
	status_columns.GetStatusColumnService(),
	audit_logs.GetAuditLogService(),
}
var kanbanController = &KanbanController{
	kanbanService,
}

func GetKanbanService() *KanbanService {
	return kanbanService
}

func GetKanbanController() *KanbanController {
	return kanbanController
}
