package workspaces_repositories

import (
	"time"

	users_enums "picktask-backend/internal/features/users/enums"
	workspaces_dto "picktask-backend/internal/features/workspaces/dto"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(
	tx *gorm.DB,
	membership *workspaces_models.WorkspaceMembership,
) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return tx.Create(membership).Error
}

// GetMembershipByUserAndWorkspace returns nil when the user is not a member.
func (r *MembershipRepository) GetMembershipByUserAndWorkspace(
	tx *gorm.DB,
	userID, workspaceID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	var membership workspaces_models.WorkspaceMembership

	if err := tx.
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		First(&membership).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

// GetMembershipByID returns nil when the membership is not part of the workspace.
func (r *MembershipRepository) GetMembershipByID(
	tx *gorm.DB,
	workspaceID, membershipID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	var membership workspaces_models.WorkspaceMembership

	if err := tx.
		Where("id = ? AND workspace_id = ?", membershipID, workspaceID).
		First(&membership).Error; err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) GetWorkspaceMembers(
	workspaceID uuid.UUID,
) ([]*workspaces_dto.WorkspaceMemberResponseDTO, error) {
	members := make([]*workspaces_dto.WorkspaceMemberResponseDTO, 0)

	err := storage.GetDb().
		Table("workspace_memberships wm").
		Select("wm.id, wm.user_id, u.username, u.email, u.name, wm.role, wm.created_at").
		Joins("JOIN users u ON wm.user_id = u.id").
		Where("wm.workspace_id = ?", workspaceID).
		Order("wm.created_at ASC").
		Scan(&members).Error

	return members, err
}

// GetUserMemberships lists the user's memberships, most recently joined first.
func (r *MembershipRepository) GetUserMemberships(
	userID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, error) {
	memberships := make([]*workspaces_models.WorkspaceMembership, 0)

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&memberships).Error

	return memberships, err
}

func (r *MembershipRepository) GetWorkspacesWithRolesByUserID(
	userID uuid.UUID,
) ([]workspaces_dto.WorkspaceResponseDTO, error) {
	results := make([]workspaces_dto.WorkspaceResponseDTO, 0)

	err := storage.GetDb().
		Table("workspaces w").
		Select("w.id, w.name, w.created_by, w.created_at, wm.role as user_role").
		Joins("JOIN workspace_memberships wm ON w.id = wm.workspace_id").
		Where("wm.user_id = ?", userID).
		Order("wm.created_at DESC, w.id ASC").
		Scan(&results).Error

	return results, err
}

func (r *MembershipRepository) UpdateMemberRole(
	tx *gorm.DB,
	membershipID uuid.UUID,
	role users_enums.WorkspaceRole,
) error {
	return tx.
		Model(&workspaces_models.WorkspaceMembership{}).
		Where("id = ?", membershipID).
		Update("role", role).Error
}

func (r *MembershipRepository) RemoveMember(tx *gorm.DB, membershipID uuid.UUID) error {
	return tx.
		Where("id = ?", membershipID).
		Delete(&workspaces_models.WorkspaceMembership{}).Error
}

func (r *MembershipRepository) CountAdmins(tx *gorm.DB, workspaceID uuid.UUID) (int64, error) {
	var count int64

	err := tx.
		Model(&workspaces_models.WorkspaceMembership{}).
		Where("workspace_id = ? AND role = ?", workspaceID, users_enums.WorkspaceRoleAdmin).
		Count(&count).Error

	return count, err
}

func (r *MembershipRepository) DeleteByWorkspace(tx *gorm.DB, workspaceID uuid.UUID) error {
	return tx.
		Where("workspace_id = ?", workspaceID).
		Delete(&workspaces_models.WorkspaceMembership{}).Error
}
