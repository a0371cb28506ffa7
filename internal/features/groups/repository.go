package groups

import (
	"errors"
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepository struct{}

func (r *GroupRepository) Create(tx *gorm.DB, group *Group) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}

	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	return tx.Create(group).Error
}

func (r *GroupRepository) Save(tx *gorm.DB, group *Group) error {
	return tx.Save(group).Error
}

// FindByID returns nil when the group does not exist or belongs to another
// workspace.
func (r *GroupRepository) FindByID(workspaceID, groupID uuid.UUID) (*Group, error) {
	var group Group

	if err := storage.GetDb().
		Where("id = ? AND workspace_id = ?", groupID, workspaceID).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &group, nil
}

func (r *GroupRepository) ExistsByName(
	workspaceID uuid.UUID,
	name string,
	excludeID *uuid.UUID,
) (bool, error) {
	var count int64

	query := storage.GetDb().
		Model(&Group{}).
		Where("workspace_id = ? AND LOWER(name) = LOWER(?)", workspaceID, name)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *GroupRepository) GetByWorkspace(workspaceID uuid.UUID) ([]*GroupSummaryDTO, error) {
	groups := make([]*GroupSummaryDTO, 0)

	if err := storage.GetDb().
		Table("workspace_groups g").
		Select(`
			g.id,
			g.workspace_id,
			g.name,
			g.description,
			g.color,
			g.created_by,
			g.created_at,
			COUNT(gm.id) AS members_count
		`).
		Joins("LEFT JOIN group_memberships gm ON gm.group_id = g.id").
		Where("g.workspace_id = ?", workspaceID).
		Group("g.id, g.workspace_id, g.name, g.description, g.color, g.created_by, g.created_at").
		Order("g.name ASC").
		Scan(&groups).Error; err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *GroupRepository) Delete(tx *gorm.DB, groupID uuid.UUID) error {
	if err := tx.Where("group_id = ?", groupID).Delete(&GroupMembership{}).Error; err != nil {
		return err
	}

	return tx.Where("id = ?", groupID).Delete(&Group{}).Error
}

func (r *GroupRepository) DeleteByWorkspace(tx *gorm.DB, workspaceID uuid.UUID) error {
	if err := tx.
		Where("group_id IN (?)", tx.Model(&Group{}).Select("id").Where("workspace_id = ?", workspaceID)).
		Delete(&GroupMembership{}).Error; err != nil {
		return err
	}

	return tx.Where("workspace_id = ?", workspaceID).Delete(&Group{}).Error
}

func (r *GroupRepository) CreateMembership(tx *gorm.DB, membership *GroupMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.AddedAt.IsZero() {
		membership.AddedAt = time.Now().UTC()
	}

	return tx.Create(membership).Error
}

func (r *GroupRepository) FindMembership(groupID, groupMembershipID uuid.UUID) (*GroupMembership, error) {
	var membership GroupMembership

	if err := storage.GetDb().
		Where("id = ? AND group_id = ?", groupMembershipID, groupID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *GroupRepository) IsGroupMember(groupID, userID uuid.UUID) (bool, error) {
	var count int64

	if err := storage.GetDb().
		Model(&GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *GroupRepository) GetMembers(groupID uuid.UUID) ([]*GroupMemberDTO, error) {
	members := make([]*GroupMemberDTO, 0)

	if err := storage.GetDb().
		Table("group_memberships gm").
		Select("gm.id, gm.user_id, u.username, u.email, u.name, gm.added_at").
		Joins("JOIN users u ON u.id = gm.user_id").
		Where("gm.group_id = ?", groupID).
		Order("u.username ASC").
		Scan(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

func (r *GroupRepository) DeleteMembership(tx *gorm.DB, groupMembershipID uuid.UUID) error {
	return tx.Where("id = ?", groupMembershipID).Delete(&GroupMembership{}).Error
}

func (r *GroupRepository) DeleteUserMemberships(tx *gorm.DB, workspaceID, userID uuid.UUID) error {
	return tx.
		Where("user_id = ?", userID).
		Where("group_id IN (?)", tx.Model(&Group{}).Select("id").Where("workspace_id = ?", workspaceID)).
		Delete(&GroupMembership{}).Error
}
