package groups

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

const DefaultGroupColor = "#6B7280"

// Group is a named team of workspace members.
type Group struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;primaryKey"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;uniqueIndex:idx_group_workspace_name"`
	Name        string    `json:"name"        gorm:"column:name;uniqueIndex:idx_group_workspace_name"`
	Description string    `json:"description" gorm:"column:description"`
	Color       string    `json:"color"       gorm:"column:color"`
	CreatedBy   uuid.UUID `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Group) TableName() string {
	return "workspace_groups"
}

type GroupMembership struct {
	ID      uuid.UUID `json:"id"      gorm:"column:id;primaryKey"`
	GroupID uuid.UUID `json:"groupId" gorm:"column:group_id;uniqueIndex:idx_group_membership_group_user"`
	UserID  uuid.UUID `json:"userId"  gorm:"column:user_id;uniqueIndex:idx_group_membership_group_user"`
	AddedBy uuid.UUID `json:"addedBy" gorm:"column:added_by"`
	AddedAt time.Time `json:"addedAt" gorm:"column:added_at"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}

func init() {
	storage.RegisterModels(&Group{}, &GroupMembership{})
}
