package groups

import (
	"picktask-backend/internal/features/audit_logs"
	users_services "picktask-backend/internal/features/users/services"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
)

var groupRepository = &GroupRepository{}
var groupService = &GroupService{
	groupRepository,
	workspaces_services.GetWorkspaceService(),
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
}
var groupController = &GroupController{
	groupService,
}

func GetGroupService() *GroupService {
	return groupService
}

func GetGroupController() *GroupController {
	return groupController
}

func SetupDependencies() {
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(groupService)
	workspaces_services.GetMembershipService().AddMembershipRemovalListener(groupService)
}
