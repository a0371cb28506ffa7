package workspaces_interfaces

import (
	users_enums "picktask-backend/internal/features/users/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkspaceDeletionListener removes data owned by a workspace inside the
// deletion transaction.
type WorkspaceDeletionListener interface {
	OnBeforeWorkspaceDeletion(tx *gorm.DB, workspaceID uuid.UUID) error
}

// InvitationSender notifies an unregistered email about a workspace
// invitation. Delivery is fire-and-forget.
type InvitationSender interface {
	SendWorkspaceInvitation(
		email string,
		workspaceID uuid.UUID,
		workspaceName string,
		role users_enums.WorkspaceRole,
	)
}

// MembershipRemovalListener drops workspace-scoped data tied to a member who
// leaves the workspace, inside the removal transaction.
type MembershipRemovalListener interface {
	OnBeforeMembershipRemoval(tx *gorm.DB, workspaceID uuid.UUID, userID uuid.UUID) error
}
