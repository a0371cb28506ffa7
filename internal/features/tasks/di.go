package tasks

import (
	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
)

var taskRepository = &TaskRepository{}
var taskService = &TaskService{
	taskRepository,
	workspaces_services.GetWorkspaceService(),
	projects.GetProjectService(),
	status_columns.GetStatusColumnService(),
	audit_logs.GetAuditLogService(),
	[]TaskDeletionListener{},
}
var taskController = &TaskController{
	taskService,
}

func GetTaskService() *TaskService {
	return taskService
}

func GetTaskController() *TaskController {
	return taskController
}

func SetupDependencies() {
	projects.GetProjectService().AddProjectDeletionListener(taskService)
}
