package tasks_testing

import (
	"fmt"

	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/tasks"
	users_dto "picktask-backend/internal/features/users/dto"
	users_testing "picktask-backend/internal/features/users/testing"

	"github.com/google/uuid"
)

// SetupDependencies wires the project and task deletion cascade.
func SetupDependencies() {
	projects.SetupDependencies()
	tasks.SetupDependencies()
}

func CreateTestProject(
	workspaceID uuid.UUID,
	creator *users_dto.SignInResponseDTO,
	name string,
) *projects.Project {
	project, err := projects.GetProjectService().CreateProject(
		workspaceID,
		&projects.CreateProjectRequest{Name: name},
		users_testing.GetTestUser(creator.UserID),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create project: %v", err))
	}

	return project
}

// CreateTestTask creates the task in the given column, or the first column
// when columnID is nil.
func CreateTestTask(
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	creator *users_dto.SignInResponseDTO,
	title string,
	columnID *uuid.UUID,
) *tasks.TaskDTO {
	task, err := tasks.GetTaskService().CreateTask(
		workspaceID,
		&tasks.CreateTaskRequest{
			Title:          title,
			ProjectID:      projectID,
			StatusColumnID: columnID,
		},
		users_testing.GetTestUser(creator.UserID),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create task: %v", err))
	}

	return task
}
