package workspaces_models

import (
	"time"

	users_enums "picktask-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type WorkspaceMembership struct {
	ID          uuid.UUID                 `json:"id"          gorm:"column:id;primaryKey"`
	UserID      uuid.UUID                 `json:"userId"      gorm:"column:user_id;uniqueIndex:idx_membership_user_workspace"`
	WorkspaceID uuid.UUID                 `json:"workspaceId" gorm:"column:workspace_id;uniqueIndex:idx_membership_user_workspace"`
	Role        users_enums.WorkspaceRole `json:"role"        gorm:"column:role"`
	CreatedAt   time.Time                 `json:"createdAt"   gorm:"column:created_at"`
}

func (WorkspaceMembership) TableName() string {
	return "workspace_memberships"
}

func (m *WorkspaceMembership) IsAdmin() bool {
	return m.Role.CanManageWorkspace()
}
