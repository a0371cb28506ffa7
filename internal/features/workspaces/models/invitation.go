package workspaces_models

import (
	"time"

	users_enums "picktask-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// Invitation is a pending membership for an email that has no account yet.
type Invitation struct {
	ID          uuid.UUID                 `json:"id"          gorm:"column:id;primaryKey"`
	WorkspaceID uuid.UUID                 `json:"workspaceId" gorm:"column:workspace_id;index"`
	Email       string                    `json:"email"       gorm:"column:email;index"`
	Role        users_enums.WorkspaceRole `json:"role"        gorm:"column:role"`
	InvitedBy   uuid.UUID                 `json:"invitedBy"   gorm:"column:invited_by"`
	CreatedAt   time.Time                 `json:"createdAt"   gorm:"column:created_at"`
	ExpiresAt   time.Time                 `json:"expiresAt"   gorm:"column:expires_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
