package workspace_context

import (
	"fmt"

	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/sessions"
	users_enums "picktask-backend/internal/features/users/enums"
	users_models "picktask-backend/internal/features/users/models"
	workspaces_models "picktask-backend/internal/features/workspaces/models"

	"github.com/google/uuid"
)

// ResolveInput holds the candidate ids for one request. Nil means absent.
type ResolveInput struct {
	PathWorkspaceID    *uuid.UUID
	PathProjectID      *uuid.UUID
	SessionWorkspaceID *uuid.UUID
	SessionProjectID   *uuid.UUID
}

// SessionChanges lists the session writes needed to persist a resolution.
// A key is never both set and deleted.
type SessionChanges struct {
	Set    map[string]uuid.UUID
	Delete []string
}

func (c *SessionChanges) IsEmpty() bool {
	return len(c.Set) == 0 && len(c.Delete) == 0
}

func (c *SessionChanges) set(key string, value uuid.UUID) {
	if c.Set == nil {
		c.Set = map[string]uuid.UUID{}
	}
	c.Set[key] = value

	for i, deleted := range c.Delete {
		if deleted == key {
			c.Delete = append(c.Delete[:i], c.Delete[i+1:]...)
			break
		}
	}
}

func (c *SessionChanges) delete(key string) {
	if _, ok := c.Set[key]; ok {
		return
	}

	for _, deleted := range c.Delete {
		if deleted == key {
			return
		}
	}
	c.Delete = append(c.Delete, key)
}

type WorkspaceChoiceDTO struct {
	ID   uuid.UUID                 `json:"id"`
	Name string                    `json:"name"`
	Role users_enums.WorkspaceRole `json:"role"`
}

// ResolvedContext is the current workspace and project of a request. An
// empty Workspace means the user belongs to no workspace.
type ResolvedContext struct {
	Workspaces     []*WorkspaceChoiceDTO                  `json:"workspaces"`
	Workspace      *workspaces_models.Workspace           `json:"currentWorkspace"`
	Membership     *workspaces_models.WorkspaceMembership `json:"membership"`
	Project        *projects.Project                      `json:"currentProject"`
	SessionChanges SessionChanges                         `json:"-"`
}

func emptyContext() *ResolvedContext {
	return &ResolvedContext{Workspaces: make([]*WorkspaceChoiceDTO, 0)}
}

type ContextResolver struct {
	workspaceService MembershipReader
	projectService   *projects.ProjectService
	sessionStore     *sessions.SessionStore
}

// Resolve picks the current workspace from the path, then the session, then
// the most recently joined membership. The project follows the same order
// within the chosen workspace and falls back to its newest project. Resolve
// performs no writes; the caller applies SessionChanges.
func (r *ContextResolver) Resolve(
	user *users_models.User,
	input *ResolveInput,
) (*ResolvedContext, error) {
	memberships, workspaces, err := r.workspaceService.GetUserMemberships(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}

	resolved := emptyContext()
	membershipsByWorkspace := make(map[uuid.UUID]int, len(memberships))
	for i, membership := range memberships {
		membershipsByWorkspace[membership.WorkspaceID] = i
		resolved.Workspaces = append(resolved.Workspaces, &WorkspaceChoiceDTO{
			ID:   workspaces[i].ID,
			Name: workspaces[i].Name,
			Role: membership.Role,
		})
	}

	selected := -1
	if input.PathWorkspaceID != nil {
		if i, ok := membershipsByWorkspace[*input.PathWorkspaceID]; ok {
			selected = i
		}
	}
	if selected < 0 && input.SessionWorkspaceID != nil {
		if i, ok := membershipsByWorkspace[*input.SessionWorkspaceID]; ok {
			selected = i
		}
	}
	if selected < 0 && len(memberships) > 0 {
		selected = 0
	}

	if selected < 0 {
		if input.SessionWorkspaceID != nil {
			resolved.SessionChanges.delete(sessions.KeyCurrentWorkspaceID)
		}
		if input.SessionProjectID != nil {
			resolved.SessionChanges.delete(sessions.KeyCurrentProjectID)
		}

		return resolved, nil
	}

	resolved.Workspace = workspaces[selected]
	resolved.Membership = memberships[selected]
	if !sameID(input.SessionWorkspaceID, resolved.Workspace.ID) {
		resolved.SessionChanges.set(sessions.KeyCurrentWorkspaceID, resolved.Workspace.ID)
	}

	if err := r.resolveProject(resolved, input); err != nil {
		return nil, err
	}

	return resolved, nil
}

func (r *ContextResolver) resolveProject(resolved *ResolvedContext, input *ResolveInput) error {
	workspaceID := resolved.Workspace.ID

	if input.PathProjectID != nil {
		project, err := r.projectService.FindProject(workspaceID, *input.PathProjectID)
		if err != nil {
			return fmt.Errorf("failed to resolve project: %w", err)
		}
		resolved.Project = project
	}

	if resolved.Project == nil && input.SessionProjectID != nil {
		project, err := r.projectService.FindProject(workspaceID, *input.SessionProjectID)
		if err != nil {
			return fmt.Errorf("failed to resolve project: %w", err)
		}

		if project == nil {
			resolved.SessionChanges.delete(sessions.KeyCurrentProjectID)
		}
		resolved.Project = project
	}

	if resolved.Project == nil {
		workspaceProjects, err := r.projectService.GetWorkspaceProjects(workspaceID)
		if err != nil {
			return fmt.Errorf("failed to resolve project: %w", err)
		}

		if len(workspaceProjects) > 0 {
			resolved.Project = workspaceProjects[0]
		}
	}

	if resolved.Project != nil && !sameID(input.SessionProjectID, resolved.Project.ID) {
		resolved.SessionChanges.set(sessions.KeyCurrentProjectID, resolved.Project.ID)
	}

	return nil
}

func sameID(stored *uuid.UUID, id uuid.UUID) bool {
	return stored != nil && *stored == id
}
