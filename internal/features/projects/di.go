package projects

import (
	"picktask-backend/internal/features/audit_logs"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
)

var projectRepository = &ProjectRepository{}
var projectService = &ProjectService{
	projectRepository,
	workspaces_services.GetWorkspaceService(),
	audit_logs.GetAuditLogService(),
	[]ProjectDeletionListener{},
}
var projectController = &ProjectController{
	projectService,
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetProjectController() *ProjectController {
	return projectController
}

func SetupDependencies() {
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(projectService)
}
