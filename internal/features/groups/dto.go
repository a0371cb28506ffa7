package groups

import (
	"time"

	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type AddGroupMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type GroupSummaryDTO struct {
	Group
	MembersCount int64 `json:"membersCount" gorm:"column:members_count"`
}

type GroupMemberDTO struct {
	ID       uuid.UUID `json:"id"       gorm:"column:id"`
	UserID   uuid.UUID `json:"userId"   gorm:"column:user_id"`
	Username string    `json:"username" gorm:"column:username"`
	Email    string    `json:"email"    gorm:"column:email"`
	Name     string    `json:"name"     gorm:"column:name"`
	AddedAt  time.Time `json:"addedAt"  gorm:"column:added_at"`
}

type ListGroupsResponse struct {
	Groups []*GroupSummaryDTO `json:"groups"`
}

type GroupDetailsResponse struct {
	Group   *Group            `json:"group"`
	Members []*GroupMemberDTO `json:"members"`
}
