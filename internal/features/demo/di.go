package demo

import (
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	"picktask-backend/internal/features/tasks"
	users_services "picktask-backend/internal/features/users/services"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/util/logger"
)

var demoSeeder = &DemoSeeder{
	users_services.GetUserService(),
	workspaces_services.GetWorkspaceService(),
	workspaces_services.GetMembershipService(),
	projects.GetProjectService(),
	tasks.GetTaskService(),
	status_columns.GetStatusColumnService(),
	logger.GetLogger(),
}

func GetDemoSeeder() *DemoSeeder {
	return demoSeeder
}
