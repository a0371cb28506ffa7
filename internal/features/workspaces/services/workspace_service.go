package workspaces_services

import (
	"fmt"
	"strings"
	"unicode"

	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/status_columns"
	users_enums "picktask-backend/internal/features/users/enums"
	users_models "picktask-backend/internal/features/users/models"
	workspaces_dto "picktask-backend/internal/features/workspaces/dto"
	workspaces_interfaces "picktask-backend/internal/features/workspaces/interfaces"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	workspaces_repositories "picktask-backend/internal/features/workspaces/repositories"
	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	accessDeniedMessage = "You don't have access to this workspace"
	adminOnlyMessage    = "Admin access required for this action"
)

type WorkspaceService struct {
	workspaceRepository        *workspaces_repositories.WorkspaceRepository
	membershipRepository       *workspaces_repositories.MembershipRepository
	invitationRepository       *workspaces_repositories.InvitationRepository
	statusColumnService        *status_columns.StatusColumnService
	auditLogService            *audit_logs.AuditLogService
	workspaceDeletionListeners []workspaces_interfaces.WorkspaceDeletionListener
}

func (s *WorkspaceService) AddWorkspaceDeletionListener(
	listener workspaces_interfaces.WorkspaceDeletionListener,
) {
	for _, existing := range s.workspaceDeletionListeners {
		if existing == listener {
			return
		}
	}

	s.workspaceDeletionListeners = append(s.workspaceDeletionListeners, listener)
}

// CreateWorkspace stores the workspace together with the creator's admin
// membership, the default status columns and the activity entry.
func (s *WorkspaceService) CreateWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	name, err := normalizeWorkspaceName(request.Name)
	if err != nil {
		return nil, err
	}

	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: creator.ID,
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.workspaceRepository.CreateWorkspace(tx, workspace); err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}

		membership := &workspaces_models.WorkspaceMembership{
			UserID:      creator.ID,
			WorkspaceID: workspace.ID,
			Role:        users_enums.WorkspaceRoleAdmin,
		}

		if err := s.membershipRepository.CreateMembership(tx, membership); err != nil {
			return fmt.Errorf("failed to create workspace membership: %w", err)
		}

		if err := s.statusColumnService.EnsureDefaultColumns(tx, workspace.ID); err != nil {
			return err
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("created workspace '%s'", workspace.Name),
			&creator.ID,
			&workspace.ID,
		)
	})
	if err != nil {
		return nil, err
	}

	adminRole := users_enums.WorkspaceRoleAdmin
	return &workspaces_dto.WorkspaceResponseDTO{
		ID:        workspace.ID,
		Name:      workspace.Name,
		CreatedBy: workspace.CreatedBy,
		CreatedAt: workspace.CreatedAt,
		UserRole:  &adminRole,
	}, nil
}

func (s *WorkspaceService) GetWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, _, err := s.RequireMembership(workspaceID, user)
	return workspace, err
}

func (s *WorkspaceService) GetUserWorkspaces(
	user *users_models.User,
) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	workspaces, err := s.membershipRepository.GetWorkspacesWithRolesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user workspaces: %w", err)
	}

	return &workspaces_dto.ListWorkspacesResponseDTO{
		Workspaces: workspaces,
	}, nil
}

// GetUserMemberships returns memberships newest-joined first, paired with
// their workspaces in the same order.
func (s *WorkspaceService) GetUserMemberships(
	userID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, []*workspaces_models.Workspace, error) {
	memberships, err := s.membershipRepository.GetUserMemberships(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user memberships: %w", err)
	}

	workspaceIDs := make([]uuid.UUID, len(memberships))
	for i, membership := range memberships {
		workspaceIDs[i] = membership.WorkspaceID
	}

	workspaces, err := s.workspaceRepository.GetWorkspacesByIDs(workspaceIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user workspaces: %w", err)
	}

	workspacesByID := make(map[uuid.UUID]*workspaces_models.Workspace, len(workspaces))
	for _, workspace := range workspaces {
		workspacesByID[workspace.ID] = workspace
	}

	orderedMemberships := make([]*workspaces_models.WorkspaceMembership, 0, len(memberships))
	orderedWorkspaces := make([]*workspaces_models.Workspace, 0, len(memberships))
	for _, membership := range memberships {
		workspace, ok := workspacesByID[membership.WorkspaceID]
		if !ok {
			continue
		}

		orderedMemberships = append(orderedMemberships, membership)
		orderedWorkspaces = append(orderedWorkspaces, workspace)
	}

	return orderedMemberships, orderedWorkspaces, nil
}

func (s *WorkspaceService) UpdateWorkspace(
	workspaceID uuid.UUID,
	request *workspaces_dto.UpdateWorkspaceRequestDTO,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, _, err := s.RequireAdmin(workspaceID, user)
	if err != nil {
		return nil, err
	}

	name, err := normalizeWorkspaceName(request.Name)
	if err != nil {
		return nil, err
	}

	workspace.UpdateFromDTO(name)

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.workspaceRepository.UpdateWorkspace(tx, workspace); err != nil {
			return fmt.Errorf("failed to update workspace: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("updated workspace '%s'", workspace.Name),
			&user.ID,
			&workspace.ID,
		)
	})
	if err != nil {
		return nil, err
	}

	return workspace, nil
}

// DeleteWorkspace removes the workspace and everything it owns in one
// transaction. Listeners run first so that owned rows go before the owner.
func (s *WorkspaceService) DeleteWorkspace(workspaceID uuid.UUID, user *users_models.User) error {
	workspace, _, err := s.RequireAdmin(workspaceID, user)
	if err != nil {
		return err
	}

	return storage.Transaction(func(tx *gorm.DB) error {
		for _, listener := range s.workspaceDeletionListeners {
			if err := listener.OnBeforeWorkspaceDeletion(tx, workspaceID); err != nil {
				return fmt.Errorf("failed to delete workspace: %w", err)
			}
		}

		if err := s.statusColumnService.OnBeforeWorkspaceDeletion(tx, workspaceID); err != nil {
			return err
		}

		if err := s.invitationRepository.DeleteByWorkspace(tx, workspaceID); err != nil {
			return fmt.Errorf("failed to delete workspace invitations: %w", err)
		}

		if err := s.membershipRepository.DeleteByWorkspace(tx, workspaceID); err != nil {
			return fmt.Errorf("failed to delete workspace memberships: %w", err)
		}

		if err := s.auditLogService.DeleteWorkspaceAuditLogs(tx, workspaceID); err != nil {
			return err
		}

		if err := s.workspaceRepository.DeleteWorkspace(tx, workspaceID); err != nil {
			return fmt.Errorf("failed to delete workspace: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("deleted workspace '%s'", workspace.Name),
			&user.ID,
			nil,
		)
	})
}

// RequireMembership is the membership gate. It performs no writes.
func (s *WorkspaceService) RequireMembership(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_models.Workspace, *workspaces_models.WorkspaceMembership, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, nil, apperrors.NotFound("Workspace not found")
	}

	membership, err := s.GetMembership(workspaceID, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if membership == nil {
		return nil, nil, apperrors.AccessDenied(accessDeniedMessage)
	}

	return workspace, membership, nil
}

// RequireAdmin is the admin gate. It performs no writes.
func (s *WorkspaceService) RequireAdmin(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_models.Workspace, *workspaces_models.WorkspaceMembership, error) {
	workspace, membership, err := s.RequireMembership(workspaceID, user)
	if err != nil {
		return nil, nil, err
	}

	if !membership.IsAdmin() {
		return nil, nil, apperrors.AccessDenied(adminOnlyMessage)
	}

	return workspace, membership, nil
}

// GetMembership returns nil when the user is not a member of the workspace.
func (s *WorkspaceService) GetMembership(
	workspaceID uuid.UUID,
	userID uuid.UUID,
) (*workspaces_models.WorkspaceMembership, error) {
	membership, err := s.membershipRepository.GetMembershipByUserAndWorkspace(
		storage.GetDb(),
		userID,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace membership: %w", err)
	}

	return membership, nil
}

func (s *WorkspaceService) IsMember(workspaceID uuid.UUID, userID uuid.UUID) (bool, error) {
	membership, err := s.GetMembership(workspaceID, userID)
	if err != nil {
		return false, err
	}

	return membership != nil, nil
}

func (s *WorkspaceService) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	return s.workspaceRepository.GetWorkspaceByID(workspaceID)
}

func normalizeWorkspaceName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperrors.Validation("Name is required")
	}

	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return "", apperrors.Validation("Name must not contain control characters")
	}

	return name, nil
}
