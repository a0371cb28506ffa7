package groups

import (
	"fmt"
	"regexp"
	"strings"

	"picktask-backend/internal/features/audit_logs"
	users_models "picktask-backend/internal/features/users/models"
	users_services "picktask-backend/internal/features/users/services"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const duplicateGroupMessage = "A group with this name already exists in this workspace"

var groupColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type GroupService struct {
	groupRepository  *GroupRepository
	workspaceService *workspaces_services.WorkspaceService
	userService      *users_services.UserService
	auditLogService  *audit_logs.AuditLogService
}

func (s *GroupService) GetGroups(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*ListGroupsResponse, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	groups, err := s.groupRepository.GetByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}

	return &ListGroupsResponse{Groups: groups}, nil
}

func (s *GroupService) CreateGroup(
	workspaceID uuid.UUID,
	request *CreateGroupRequest,
	user *users_models.User,
) (*Group, error) {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, user); err != nil {
		return nil, err
	}

	group := &Group{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(request.Name),
		Description: strings.TrimSpace(request.Description),
		Color:       strings.TrimSpace(request.Color),
		CreatedBy:   user.ID,
	}

	if group.Color == "" {
		group.Color = DefaultGroupColor
	}

	if err := s.validateGroup(group); err != nil {
		return nil, err
	}

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.groupRepository.Create(tx, group); err != nil {
			if storage.IsUniqueViolation(err) {
				return apperrors.Validation(duplicateGroupMessage)
			}

			return fmt.Errorf("failed to create group: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("created group '%s'", group.Name),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

func (s *GroupService) GetGroup(
	workspaceID, groupID uuid.UUID,
	user *users_models.User,
) (*GroupDetailsResponse, error) {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, user); err != nil {
		return nil, err
	}

	group, err := s.requireGroup(workspaceID, groupID)
	if err != nil {
		return nil, err
	}

	members, err := s.groupRepository.GetMembers(group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}

	return &GroupDetailsResponse{Group: group, Members: members}, nil
}

func (s *GroupService) UpdateGroup(
	workspaceID, groupID uuid.UUID,
	request *UpdateGroupRequest,
	user *users_models.User,
) (*Group, error) {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, user); err != nil {
		return nil, err
	}

	group, err := s.requireGroup(workspaceID, groupID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		group.Name = strings.TrimSpace(*request.Name)
	}
	if request.Description != nil {
		group.Description = strings.TrimSpace(*request.Description)
	}
	if request.Color != nil {
		group.Color = strings.TrimSpace(*request.Color)
	}

	if err := s.validateGroup(group); err != nil {
		return nil, err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.groupRepository.Save(tx, group); err != nil {
			if storage.IsUniqueViolation(err) {
				return apperrors.Validation(duplicateGroupMessage)
			}

			return fmt.Errorf("failed to update group: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("updated group '%s'", group.Name),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

func (s *GroupService) DeleteGroup(
	workspaceID, groupID uuid.UUID,
	user *users_models.User,
) error {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, user); err != nil {
		return err
	}

	group, err := s.requireGroup(workspaceID, groupID)
	if err != nil {
		return err
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.groupRepository.Delete(tx, group.ID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("deleted group '%s'", group.Name),
			&user.ID,
			&workspaceID,
		)
	})
}

func (s *GroupService) AddMember(
	workspaceID, groupID uuid.UUID,
	request *AddGroupMemberRequest,
	user *users_models.User,
) (*GroupMembership, error) {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, user); err != nil {
		return nil, err
	}

	group, err := s.requireGroup(workspaceID, groupID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.workspaceService.IsMember(workspaceID, request.UserID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.Validation("User must be a member of this workspace")
	}

	alreadyInGroup, err := s.groupRepository.IsGroupMember(group.ID, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check group membership: %w", err)
	}
	if alreadyInGroup {
		return nil, apperrors.Validation("User is already a member of this group")
	}

	targetUser, err := s.userService.GetUserByID(request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	membership := &GroupMembership{
		GroupID: group.ID,
		UserID:  request.UserID,
		AddedBy: user.ID,
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.groupRepository.CreateMembership(tx, membership); err != nil {
			if storage.IsUniqueViolation(err) {
				return apperrors.Validation("User is already a member of this group")
			}

			return fmt.Errorf("failed to add group member: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("added %s to group '%s'", targetUser.Username, group.Name),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return membership, nil
}

func (s *GroupService) RemoveMember(
	workspaceID, groupID, groupMembershipID uuid.UUID,
	user *users_models.User,
) error {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, user); err != nil {
		return err
	}

	group, err := s.requireGroup(workspaceID, groupID)
	if err != nil {
		return err
	}

	membership, err := s.groupRepository.FindMembership(group.ID, groupMembershipID)
	if err != nil {
		return fmt.Errorf("failed to get group membership: %w", err)
	}
	if membership == nil {
		return apperrors.NotFound("Group member not found")
	}

	targetUser, err := s.userService.GetUserByID(membership.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.groupRepository.DeleteMembership(tx, membership.ID); err != nil {
			return fmt.Errorf("failed to remove group member: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("removed %s from group '%s'", targetUser.Email, group.Name),
			&user.ID,
			&workspaceID,
		)
	})
}

// OnBeforeMembershipRemoval drops the leaving member from the workspace's groups.
func (s *GroupService) OnBeforeMembershipRemoval(
	tx *gorm.DB,
	workspaceID uuid.UUID,
	userID uuid.UUID,
) error {
	if err := s.groupRepository.DeleteUserMemberships(tx, workspaceID, userID); err != nil {
		return fmt.Errorf("failed to remove user from groups: %w", err)
	}

	return nil
}

func (s *GroupService) OnBeforeWorkspaceDeletion(tx *gorm.DB, workspaceID uuid.UUID) error {
	if err := s.groupRepository.DeleteByWorkspace(tx, workspaceID); err != nil {
		return fmt.Errorf("failed to delete groups: %w", err)
	}

	return nil
}

func (s *GroupService) requireGroup(workspaceID, groupID uuid.UUID) (*Group, error) {
	group, err := s.groupRepository.FindByID(workspaceID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, apperrors.NotFound("Group not found")
	}

	return group, nil
}

func (s *GroupService) validateGroup(group *Group) error {
	if group.Name == "" {
		return apperrors.Validation("Group name is required")
	}

	if !groupColorPattern.MatchString(group.Color) {
		return apperrors.Validation("Color must be a hex value like #6B7280")
	}

	exists, err := s.groupRepository.ExistsByName(group.WorkspaceID, group.Name, &group.ID)
	if err != nil {
		return fmt.Errorf("failed to check group name: %w", err)
	}
	if exists {
		return apperrors.Validation(duplicateGroupMessage)
	}

	return nil
}
