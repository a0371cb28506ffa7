package workspaces_services

import (
	"fmt"
	"strings"
	"time"

	"picktask-backend/internal/features/audit_logs"
	users_enums "picktask-backend/internal/features/users/enums"
	users_models "picktask-backend/internal/features/users/models"
	users_services "picktask-backend/internal/features/users/services"
	workspaces_dto "picktask-backend/internal/features/workspaces/dto"
	workspaces_interfaces "picktask-backend/internal/features/workspaces/interfaces"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	workspaces_repositories "picktask-backend/internal/features/workspaces/repositories"
	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"
	"picktask-backend/internal/util/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipService struct {
	membershipRepository       *workspaces_repositories.MembershipRepository
	invitationRepository       *workspaces_repositories.InvitationRepository
	userService                *users_services.UserService
	auditLogService            *audit_logs.AuditLogService
	workspaceService           *WorkspaceService
	invitationSender           workspaces_interfaces.InvitationSender
	invitationTTL              time.Duration
	membershipRemovalListeners []workspaces_interfaces.MembershipRemovalListener
}

func (s *MembershipService) SetInvitationSender(sender workspaces_interfaces.InvitationSender) {
	s.invitationSender = sender
}

func (s *MembershipService) GetInvitationSender() workspaces_interfaces.InvitationSender {
	return s.invitationSender
}

func (s *MembershipService) AddMembershipRemovalListener(
	listener workspaces_interfaces.MembershipRemovalListener,
) {
	for _, existing := range s.membershipRemovalListeners {
		if existing == listener {
			return
		}
	}

	s.membershipRemovalListeners = append(s.membershipRemovalListeners, listener)
}

func (s *MembershipService) GetMembers(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_dto.GetMembersResponseDTO, error) {
	_, membership, err := s.workspaceService.RequireMembership(workspaceID, user)
	if err != nil {
		return nil, err
	}

	members, err := s.membershipRepository.GetWorkspaceMembers(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace members: %w", err)
	}

	membersList := make([]workspaces_dto.WorkspaceMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	response := &workspaces_dto.GetMembersResponseDTO{
		Members:         membersList,
		CurrentUserRole: membership.Role,
	}

	if membership.IsAdmin() {
		invitations, err := s.invitationRepository.GetPendingByWorkspace(
			workspaceID,
			time.Now().UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get pending invitations: %w", err)
		}

		for _, invitation := range invitations {
			response.PendingInvitations = append(
				response.PendingInvitations,
				workspaces_dto.PendingInvitationDTO{
					ID:        invitation.ID,
					Email:     invitation.Email,
					Role:      invitation.Role,
					ExpiresAt: invitation.ExpiresAt,
				},
			)
		}
	}

	return response, nil
}

// InviteMember adds a registered user directly. An unregistered email gets a
// pending invitation and a notification instead of a membership.
func (s *MembershipService) InviteMember(
	workspaceID uuid.UUID,
	request *workspaces_dto.InviteMemberRequestDTO,
	invitedBy *users_models.User,
) (*workspaces_dto.InviteMemberResponseDTO, error) {
	workspace, _, err := s.workspaceService.RequireAdmin(workspaceID, invitedBy)
	if err != nil {
		return nil, err
	}

	if !request.Role.IsValid() {
		return nil, apperrors.Validation("Invalid role")
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" {
		return nil, apperrors.Validation("Email is required")
	}

	targetUser, err := s.userService.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if targetUser != nil {
		return s.addExistingUser(workspace, targetUser, request.Role, invitedBy)
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.invitationRepository.DeleteByWorkspaceAndEmail(tx, workspaceID, email); err != nil {
			return fmt.Errorf("failed to replace pending invitation: %w", err)
		}

		invitation := &workspaces_models.Invitation{
			WorkspaceID: workspaceID,
			Email:       email,
			Role:        request.Role,
			InvitedBy:   invitedBy.ID,
			ExpiresAt:   time.Now().UTC().Add(s.invitationTTL),
		}

		if err := s.invitationRepository.CreateInvitation(tx, invitation); err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("sent invitation to %s as %s", email, request.Role),
			&invitedBy.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	if s.invitationSender != nil {
		s.invitationSender.SendWorkspaceInvitation(email, workspace.ID, workspace.Name, request.Role)
	}

	return &workspaces_dto.InviteMemberResponseDTO{
		Status:  workspaces_dto.InviteStatusInvited,
		Message: fmt.Sprintf("Invitation sent to %s. They'll need to register first.", email),
	}, nil
}

func (s *MembershipService) ChangeMemberRole(
	workspaceID uuid.UUID,
	membershipID uuid.UUID,
	request *workspaces_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) (*workspaces_models.WorkspaceMembership, error) {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, changedBy); err != nil {
		return nil, err
	}

	if !request.Role.IsValid() {
		return nil, apperrors.Validation("Invalid role")
	}

	membership, targetUser, err := s.getMemberWithUser(workspaceID, membershipID)
	if err != nil {
		return nil, err
	}

	if membership.UserID == changedBy.ID {
		return nil, apperrors.Validation("You cannot change your own role")
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if !request.Role.CanManageWorkspace() {
			if err := s.ensureAnotherAdminRemains(
				tx,
				membership,
				"Cannot demote the last admin of the workspace",
			); err != nil {
				return err
			}
		}

		if err := s.membershipRepository.UpdateMemberRole(tx, membership.ID, request.Role); err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf(
				"updated %s's role to %s",
				targetUser.Username,
				request.Role.DisplayName(),
			),
			&changedBy.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	membership.Role = request.Role
	return membership, nil
}

func (s *MembershipService) RemoveMember(
	workspaceID uuid.UUID,
	membershipID uuid.UUID,
	removedBy *users_models.User,
) error {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, removedBy); err != nil {
		return err
	}

	membership, targetUser, err := s.getMemberWithUser(workspaceID, membershipID)
	if err != nil {
		return err
	}

	if membership.UserID == removedBy.ID {
		return apperrors.Validation("You cannot remove yourself from the workspace")
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.ensureAnotherAdminRemains(
			tx,
			membership,
			"Cannot remove the last admin from workspace",
		); err != nil {
			return err
		}

		for _, listener := range s.membershipRemovalListeners {
			if err := listener.OnBeforeMembershipRemoval(tx, workspaceID, membership.UserID); err != nil {
				return fmt.Errorf("failed to remove member: %w", err)
			}
		}

		if err := s.membershipRepository.RemoveMember(tx, membership.ID); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("removed %s from workspace", targetUser.Email),
			&removedBy.ID,
			&workspaceID,
		)
	})
}

// OnUserRegistered turns the new user's pending invitations into memberships.
func (s *MembershipService) OnUserRegistered(user *users_models.User) error {
	now := time.Now().UTC()

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		invitations, err := s.invitationRepository.GetPendingByEmail(tx, user.Email, now)
		if err != nil {
			return fmt.Errorf("failed to get pending invitations: %w", err)
		}

		for _, invitation := range invitations {
			existing, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
				tx,
				user.ID,
				invitation.WorkspaceID,
			)
			if err != nil {
				return fmt.Errorf("failed to check membership: %w", err)
			}

			if existing == nil {
				membership := &workspaces_models.WorkspaceMembership{
					UserID:      user.ID,
					WorkspaceID: invitation.WorkspaceID,
					Role:        invitation.Role,
				}

				if err := s.membershipRepository.CreateMembership(tx, membership); err != nil {
					return fmt.Errorf("failed to accept invitation: %w", err)
				}

				if err := s.auditLogService.WriteAuditLogTx(
					tx,
					fmt.Sprintf("joined workspace as %s via invitation", invitation.Role),
					&user.ID,
					&invitation.WorkspaceID,
				); err != nil {
					return err
				}
			}

			if err := s.invitationRepository.DeleteInvitation(tx, invitation.ID); err != nil {
				return fmt.Errorf("failed to delete accepted invitation: %w", err)
			}
		}

		return nil
	})
}

func (s *MembershipService) CleanupExpiredInvitations() error {
	deleted, err := s.invitationRepository.DeleteExpired(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to delete expired invitations: %w", err)
	}

	if deleted > 0 {
		logger.GetLogger().Info("Expired invitations removed", "count", deleted)
	}

	return nil
}

func (s *MembershipService) addExistingUser(
	workspace *workspaces_models.Workspace,
	targetUser *users_models.User,
	role users_enums.WorkspaceRole,
	invitedBy *users_models.User,
) (*workspaces_dto.InviteMemberResponseDTO, error) {
	existing, err := s.workspaceService.GetMembership(workspace.ID, targetUser.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return &workspaces_dto.InviteMemberResponseDTO{
			Status:  workspaces_dto.InviteStatusAlreadyMember,
			Message: fmt.Sprintf("%s is already a member of this workspace", targetUser.Email),
		}, nil
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		membership := &workspaces_models.WorkspaceMembership{
			UserID:      targetUser.ID,
			WorkspaceID: workspace.ID,
			Role:        role,
		}

		if err := s.membershipRepository.CreateMembership(tx, membership); err != nil {
			if storage.IsUniqueViolation(err) {
				return apperrors.Validation(
					fmt.Sprintf("%s is already a member of this workspace", targetUser.Email),
				)
			}

			return fmt.Errorf("failed to add member: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("invited %s as %s", targetUser.Username, role),
			&invitedBy.ID,
			&workspace.ID,
		)
	})
	if err != nil {
		return nil, err
	}

	return &workspaces_dto.InviteMemberResponseDTO{
		Status:  workspaces_dto.InviteStatusAdded,
		Message: fmt.Sprintf("Successfully added %s to the workspace", targetUser.Username),
	}, nil
}

// ensureAnotherAdminRemains fails when the membership is the workspace's only
// admin. It must run inside the transaction that demotes or removes it.
func (s *MembershipService) ensureAnotherAdminRemains(
	tx *gorm.DB,
	membership *workspaces_models.WorkspaceMembership,
	message string,
) error {
	if !membership.IsAdmin() {
		return nil
	}

	adminsCount, err := s.membershipRepository.CountAdmins(tx, membership.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to count workspace admins: %w", err)
	}

	if adminsCount <= 1 {
		return apperrors.InvariantViolation(message)
	}

	return nil
}

func (s *MembershipService) getMemberWithUser(
	workspaceID uuid.UUID,
	membershipID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, *users_models.User, error) {
	membership, err := s.membershipRepository.GetMembershipByID(
		storage.GetDb(),
		workspaceID,
		membershipID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if membership == nil {
		return nil, nil, apperrors.NotFound("Member not found")
	}

	targetUser, err := s.userService.GetUserByID(membership.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get member user: %w", err)
	}

	return membership, targetUser, nil
}
