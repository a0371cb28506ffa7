package workspaces_dto

import (
	"time"

	users_enums "picktask-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type InviteStatus string

const (
	InviteStatusAdded         InviteStatus = "ADDED"
	InviteStatusInvited       InviteStatus = "INVITED"
	InviteStatusAlreadyMember InviteStatus = "ALREADY_MEMBER"
)

// Workspace DTOs
type CreateWorkspaceRequestDTO struct {
	Name string `json:"name" form:"name" binding:"required,min=1,max=255"`
}

type UpdateWorkspaceRequestDTO struct {
	Name string `json:"name" form:"name" binding:"required,min=1,max=255"`
}

type WorkspaceResponseDTO struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	Name      string    `json:"name"      gorm:"column:name"`
	CreatedBy uuid.UUID `json:"createdBy" gorm:"column:created_by"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	// Role of the requesting user, set when listing the user's workspaces
	UserRole *users_enums.WorkspaceRole `json:"userRole,omitempty" gorm:"column:user_role"`
}

type ListWorkspacesResponseDTO struct {
	Workspaces []WorkspaceResponseDTO `json:"workspaces"`
}

// Membership DTOs
type InviteMemberRequestDTO struct {
	Email string                    `json:"email" form:"email" binding:"required,email"`
	Role  users_enums.WorkspaceRole `json:"role"  form:"role"  binding:"required"`
}

type InviteMemberResponseDTO struct {
	Status  InviteStatus `json:"status"`
	Message string       `json:"message"`
}

type ChangeMemberRoleRequestDTO struct {
	Role users_enums.WorkspaceRole `json:"role" form:"role" binding:"required"`
}

type WorkspaceMemberResponseDTO struct {
	ID        uuid.UUID                 `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID                 `json:"userId"    gorm:"column:user_id"`
	Username  string                    `json:"username"  gorm:"column:username"`
	Email     string                    `json:"email"     gorm:"column:email"`
	Name      string                    `json:"name"      gorm:"column:name"`
	Role      users_enums.WorkspaceRole `json:"role"      gorm:"column:role"`
	CreatedAt time.Time                 `json:"createdAt" gorm:"column:created_at"`
}

type PendingInvitationDTO struct {
	ID        uuid.UUID                 `json:"id"`
	Email     string                    `json:"email"`
	Role      users_enums.WorkspaceRole `json:"role"`
	ExpiresAt time.Time                 `json:"expiresAt"`
}

type GetMembersResponseDTO struct {
	Members         []WorkspaceMemberResponseDTO `json:"members"`
	CurrentUserRole users_enums.WorkspaceRole    `json:"currentUserRole"`

	// Only admins see pending invitations
	PendingInvitations []PendingInvitationDTO `json:"pendingInvitations,omitempty"`
}
