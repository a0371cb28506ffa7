package workspaces_services

import (
	"time"

	"picktask-backend/internal/config"
	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/notifiers"
	"picktask-backend/internal/features/status_columns"
	users_services "picktask-backend/internal/features/users/services"
	workspaces_interfaces "picktask-backend/internal/features/workspaces/interfaces"
	workspaces_repositories "picktask-backend/internal/features/workspaces/repositories"
	"picktask-backend/internal/util/logger"
)

var workspaceRepository = &workspaces_repositories.WorkspaceRepository{}
var membershipRepository = &workspaces_repositories.MembershipRepository{}
var invitationRepository = &workspaces_repositories.InvitationRepository{}

var workspaceService = &WorkspaceService{
	workspaceRepository,
	membershipRepository,
	invitationRepository,
	status_columns.GetStatusColumnService(),
	audit_logs.GetAuditLogService(),
	[]workspaces_interfaces.WorkspaceDeletionListener{},
}

var membershipService = &MembershipService{
	membershipRepository,
	invitationRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	workspaceService,
	notifiers.GetInvitationNotifier(),
	time.Duration(config.GetEnv().InvitationTTLHours) * time.Hour,
	[]workspaces_interfaces.MembershipRemovalListener{},
}

var invitationCleanupBackgroundService = &InvitationCleanupBackgroundService{
	membershipService,
	logger.GetLogger(),
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetInvitationCleanupBackgroundService() *InvitationCleanupBackgroundService {
	return invitationCleanupBackgroundService
}

func SetupDependencies() {
	users_services.GetUserService().AddUserRegistrationListener(membershipService)
}
