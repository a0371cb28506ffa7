package projects

import (
	"fmt"
	"regexp"
	"strings"

	"picktask-backend/internal/features/audit_logs"
	users_models "picktask-backend/internal/features/users/models"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type ProjectService struct {
	projectRepository        *ProjectRepository
	workspaceService         *workspaces_services.WorkspaceService
	auditLogService          *audit_logs.AuditLogService
	projectDeletionListeners []ProjectDeletionListener
}

func (s *ProjectService) AddProjectDeletionListener(listener ProjectDeletionListener) {
	for _, existing := range s.projectDeletionListeners {
		if existing == listener {
			return
		}
	}

	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

func (s *ProjectService) CreateProject(
	workspaceID uuid.UUID,
	request *CreateProjectRequest,
	user *users_models.User,
) (*Project, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	project := &Project{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(request.Name),
		Description: strings.TrimSpace(request.Description),
		Color:       strings.TrimSpace(request.Color),
		CreatedBy:   user.ID,
	}

	if project.Color == "" {
		project.Color = DefaultProjectColor
	}

	if err := validateProject(project); err != nil {
		return nil, err
	}

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepository.Create(tx, project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("created project '%s'", project.Name),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) GetProjects(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*ListProjectsResponse, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	projects, err := s.GetWorkspaceProjects(workspaceID)
	if err != nil {
		return nil, err
	}

	return &ListProjectsResponse{Projects: projects}, nil
}

func (s *ProjectService) GetProject(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	user *users_models.User,
) (*Project, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	return s.RequireProject(workspaceID, projectID)
}

func (s *ProjectService) UpdateProject(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	request *UpdateProjectRequest,
	user *users_models.User,
) (*Project, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	project, err := s.RequireProject(workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	project.Update(request)
	project.Name = strings.TrimSpace(project.Name)
	project.Description = strings.TrimSpace(project.Description)
	project.Color = strings.TrimSpace(project.Color)

	if err := validateProject(project); err != nil {
		return nil, err
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepository.Save(tx, project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("updated project '%s'", project.Name),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes the project and everything its listeners own. Admin
// only.
func (s *ProjectService) DeleteProject(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	user *users_models.User,
) error {
	if _, _, err := s.workspaceService.RequireAdmin(workspaceID, user); err != nil {
		return err
	}

	project, err := s.RequireProject(workspaceID, projectID)
	if err != nil {
		return err
	}

	return storage.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteProjectData(tx, project.ID); err != nil {
			return err
		}

		if err := s.projectRepository.Delete(tx, project.ID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("deleted project '%s'", project.Name),
			&user.ID,
			&workspaceID,
		)
	})
}

// RequireProject returns NotFound unless the project belongs to the workspace.
func (s *ProjectService) RequireProject(workspaceID, projectID uuid.UUID) (*Project, error) {
	project, err := s.FindProject(workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.NotFound("Project not found")
	}

	return project, nil
}

// FindProject returns nil when the project is missing or belongs to another
// workspace.
func (s *ProjectService) FindProject(workspaceID, projectID uuid.UUID) (*Project, error) {
	project, err := s.projectRepository.FindByID(workspaceID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// GetWorkspaceProjects lists projects newest first without an access check.
func (s *ProjectService) GetWorkspaceProjects(workspaceID uuid.UUID) ([]*Project, error) {
	projects, err := s.projectRepository.FindByWorkspaceID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	return projects, nil
}

func (s *ProjectService) GetProjectsByIDs(ids []uuid.UUID) (map[uuid.UUID]*Project, error) {
	projects, err := s.projectRepository.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	byID := make(map[uuid.UUID]*Project, len(projects))
	for _, project := range projects {
		byID[project.ID] = project
	}

	return byID, nil
}

func (s *ProjectService) OnBeforeWorkspaceDeletion(tx *gorm.DB, workspaceID uuid.UUID) error {
	projectIDs, err := s.projectRepository.GetIDsByWorkspace(tx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get workspace projects: %w", err)
	}

	for _, projectID := range projectIDs {
		if err := s.deleteProjectData(tx, projectID); err != nil {
			return err
		}
	}

	if err := s.projectRepository.DeleteByWorkspace(tx, workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace projects: %w", err)
	}

	return nil
}

func (s *ProjectService) deleteProjectData(tx *gorm.DB, projectID uuid.UUID) error {
	for _, listener := range s.projectDeletionListeners {
		if err := listener.OnBeforeProjectDeletion(tx, projectID); err != nil {
			return fmt.Errorf("failed to delete project data: %w", err)
		}
	}

	return nil
}

func validateProject(project *Project) error {
	if project.Name == "" {
		return apperrors.Validation("Project name is required")
	}

	if len(project.Name) > 200 {
		return apperrors.Validation("Project name must be at most 200 characters")
	}

	if !hexColorPattern.MatchString(project.Color) {
		return apperrors.Validation("Color must be a hex value like #3B82F6")
	}

	return nil
}
