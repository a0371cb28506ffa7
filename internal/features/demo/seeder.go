package demo

import (
	"fmt"
	"log/slog"
	"time"

	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	"picktask-backend/internal/features/tasks"
	users_dto "picktask-backend/internal/features/users/dto"
	users_enums "picktask-backend/internal/features/users/enums"
	users_models "picktask-backend/internal/features/users/models"
	users_services "picktask-backend/internal/features/users/services"
	workspaces_dto "picktask-backend/internal/features/workspaces/dto"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
)

const (
	DemoPassword      = "demo12345"
	DemoWorkspaceName = "Development Team"
	demoEmailDomain   = "picktask.local"
)

type demoUser struct {
	Username string
	Name     string
	Role     users_enums.WorkspaceRole
}

type demoProject struct {
	Name        string
	Color       string
	Description string
}

type demoTask struct {
	Title       string
	Description string
	Priority    tasks.TaskPriority
}

var demoUsers = []demoUser{
	{"admin", "System Admin", users_enums.WorkspaceRoleAdmin},
	{"pm_alex", "Alex Johnson", users_enums.WorkspaceRoleAdmin},
	{"dev_sam", "Sam Chen", users_enums.WorkspaceRoleMember},
	{"design_taylor", "Taylor Reed", users_enums.WorkspaceRoleMember},
}

var demoProjects = []demoProject{
	{"Website Redesign", "#3B82F6", "Complete website overhaul with modern design"},
	{"Mobile App", "#8B5CF6", "iOS and Android mobile application"},
	{"API Development", "#10B981", "Backend API and database design"},
}

// one task per default column, in column order
var demoTasks = []demoTask{
	{"Design homepage", "Create a modern design for the homepage", tasks.TaskPriorityHigh},
	{"Implement user authentication", "Set up secure login and registration", tasks.TaskPriorityMedium},
	{"Write documentation", "Create comprehensive project documentation", tasks.TaskPriorityLow},
	{"Testing and deployment", "Final testing and production deployment", tasks.TaskPriorityHigh},
}

type SeedResult struct {
	Created   bool
	Users     int
	Projects  int
	Tasks     int
	Workspace string
}

type DemoSeeder struct {
	userService         *users_services.UserService
	workspaceService    *workspaces_services.WorkspaceService
	membershipService   *workspaces_services.MembershipService
	projectService      *projects.ProjectService
	taskService         *tasks.TaskService
	statusColumnService *status_columns.StatusColumnService
	logger              *slog.Logger
}

// Seed creates the demo team once. It does nothing when the demo admin
// already exists.
func (s *DemoSeeder) Seed() (*SeedResult, error) {
	existing, err := s.userService.GetUserByUsername(demoUsers[0].Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check demo data: %w", err)
	}
	if existing != nil {
		s.logger.Info("Demo data already exists", "username", existing.Username)
		return &SeedResult{Created: false}, nil
	}

	users := make([]*users_models.User, 0, len(demoUsers))
	for _, demoUser := range demoUsers {
		user, err := s.userService.SignUp(&users_dto.SignUpRequestDTO{
			Username: demoUser.Username,
			Email:    demoUser.Username + "@" + demoEmailDomain,
			Password: DemoPassword,
			Name:     demoUser.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create demo user %s: %w", demoUser.Username, err)
		}

		users = append(users, user)
	}

	owner := users[0]
	workspace, err := s.workspaceService.CreateWorkspace(
		&workspaces_dto.CreateWorkspaceRequestDTO{Name: DemoWorkspaceName},
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create demo workspace: %w", err)
	}

	for i, user := range users[1:] {
		_, err := s.membershipService.InviteMember(
			workspace.ID,
			&workspaces_dto.InviteMemberRequestDTO{
				Email: user.Email,
				Role:  demoUsers[i+1].Role,
			},
			owner,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to demo workspace: %w", user.Username, err)
		}
	}

	columns, err := s.statusColumnService.GetColumns(workspace.ID)
	if err != nil {
		return nil, err
	}

	result := &SeedResult{Created: true, Users: len(users), Workspace: workspace.Name}
	for _, demoProject := range demoProjects {
		project, err := s.projectService.CreateProject(
			workspace.ID,
			&projects.CreateProjectRequest{
				Name:        demoProject.Name,
				Description: demoProject.Description,
				Color:       demoProject.Color,
			},
			owner,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create demo project %s: %w", demoProject.Name, err)
		}
		result.Projects++

		for i, demoTask := range demoTasks {
			column := columns[i%len(columns)]
			assignee := users[(i+1)%len(users)]

			_, err := s.taskService.CreateTask(
				workspace.ID,
				&tasks.CreateTaskRequest{
					Title:          demoTask.Title,
					Description:    demoTask.Description,
					ProjectID:      project.ID,
					StatusColumnID: &column.ID,
					Priority:       demoTask.Priority,
					AssigneeID:     &assignee.ID,
					DueDate:        time.Now().UTC().AddDate(0, 0, i*2).Format("2006-01-02"),
				},
				owner,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create demo task %s: %w", demoTask.Title, err)
			}
			result.Tasks++
		}
	}

	s.logger.Info(
		"Demo data created",
		"workspace", result.Workspace,
		"users", result.Users,
		"projects", result.Projects,
		"tasks", result.Tasks,
	)

	return result, nil
}
