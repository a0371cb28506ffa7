package workspace_context

import (
	workspaces_models "picktask-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

// MembershipReader lists a user's memberships newest first, paired with their
// workspaces.
type MembershipReader interface {
	GetUserMemberships(
		userID uuid.UUID,
	) ([]*workspaces_models.WorkspaceMembership, []*workspaces_models.Workspace, error)
}
