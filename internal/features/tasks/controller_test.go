package tasks

import (
	"fmt"
	"net/http"
	"testing"

	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	users_dto "picktask-backend/internal/features/users/dto"
	users_enums "picktask-backend/internal/features/users/enums"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	workspaces_testing "picktask-backend/internal/features/workspaces/testing"
	test_utils "picktask-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTaskTestRouter() *gin.Engine {
	router := workspaces_testing.CreateTestRouter(GetTaskController())
	projects.SetupDependencies()
	SetupDependencies()

	return router
}

func Test_CreateTask_UsesFirstColumnAndRecordsActivity(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	workspace, project := createWorkspaceWithProject(t, owner)

	var task TaskDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/task/%s/create", workspace.ID),
		"Bearer "+owner.Token,
		CreateTaskRequest{Title: "Login page", ProjectID: project.ID},
		http.StatusOK,
		&task,
	)

	assert.Equal(t, "Login page", task.Title)
	assert.Equal(t, TaskPriorityMedium, task.Priority)
	assert.Equal(t, "Website", task.ProjectName)
	require.NotNil(t, task.StatusColumnName)
	assert.Equal(t, "To Do", *task.StatusColumnName)

	logs, err := audit_logs.GetAuditLogService().GetUserActivity(workspace.ID, owner.UserID, 1)
	require.NoError(t, err)
	assert.Equal(t, "created task 'Login page' in 'To Do' column", logs.AuditLogs[0].Message)
}

func Test_CreateTask_ValidatesReferencesAgainstWorkspace(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace, project := createWorkspaceWithProject(t, owner)
	otherWorkspace, otherProject := createWorkspaceWithProject(t, owner)

	otherColumns, err := status_columns.GetStatusColumnService().GetColumns(otherWorkspace.ID)
	require.NoError(t, err)

	tests := []struct {
		name               string
		request            CreateTaskRequest
		expectedStatusCode int
		expectedMessage    string
	}{
		{
			name:               "project of another workspace",
			request:            CreateTaskRequest{Title: "T", ProjectID: otherProject.ID},
			expectedStatusCode: http.StatusNotFound,
			expectedMessage:    "Project not found",
		},
		{
			name: "assignee outside the workspace",
			request: CreateTaskRequest{
				Title:      "T",
				ProjectID:  project.ID,
				AssigneeID: &outsider.UserID,
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedMessage:    "Assignee must be a member of this workspace",
		},
		{
			name: "column of another workspace",
			request: CreateTaskRequest{
				Title:          "T",
				ProjectID:      project.ID,
				StatusColumnID: &otherColumns[0].ID,
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedMessage:    "Invalid status column",
		},
		{
			name: "unknown priority",
			request: CreateTaskRequest{
				Title:     "T",
				ProjectID: project.ID,
				Priority:  TaskPriority("critical"),
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedMessage:    "Invalid priority",
		},
		{
			name: "malformed due date",
			request: CreateTaskRequest{
				Title:     "T",
				ProjectID: project.ID,
				DueDate:   "next week",
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedMessage:    "Invalid due date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := test_utils.MakePostRequest(
				t,
				router,
				fmt.Sprintf("/api/v1/task/%s/create", workspace.ID),
				"Bearer "+owner.Token,
				tt.request,
				tt.expectedStatusCode,
			)

			assert.Contains(t, string(resp.Body), tt.expectedMessage)
		})
	}

	tasks, err := GetTaskService().GetWorkspaceTasks(workspace.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func Test_UpdateTask_ChangesAssigneeAndColumn(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace, project := createWorkspaceWithProject(t, owner)
	workspaces_testing.AddMemberToWorkspace(workspace, member, users_enums.WorkspaceRoleMember)
	task := createTestTask(t, workspace.ID, project.ID, owner, "Login page")

	columns, err := status_columns.GetStatusColumnService().GetColumns(workspace.ID)
	require.NoError(t, err)

	assigneeID := member.UserID.String()
	priority := TaskPriorityUrgent
	var updated TaskDTO
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/task/%s/%s", workspace.ID, task.ID),
		"Bearer "+member.Token,
		UpdateTaskRequest{
			AssigneeID:     &assigneeID,
			StatusColumnID: &columns[3].ID,
			Priority:       &priority,
		},
		http.StatusOK,
		&updated,
	)

	require.NotNil(t, updated.AssigneeUsername)
	assert.Equal(t, member.Username, *updated.AssigneeUsername)
	assert.Equal(t, "Done", *updated.StatusColumnName)
	assert.Equal(t, TaskPriorityUrgent, updated.Priority)
	assert.Equal(t, "Login page", updated.Title)

	cleared := ""
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/task/%s/%s", workspace.ID, task.ID),
		"Bearer "+member.Token,
		UpdateTaskRequest{AssigneeID: &cleared},
		http.StatusOK,
		&updated,
	)
	assert.Nil(t, updated.AssigneeID)
}

func Test_DeleteTask_AllowedForCreatorAndAdminOnly(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	author := users_testing.CreateTestUser()
	bystander := users_testing.CreateTestUser()
	workspace, project := createWorkspaceWithProject(t, owner)
	workspaces_testing.AddMemberToWorkspace(workspace, author, users_enums.WorkspaceRoleMember)
	workspaces_testing.AddMemberToWorkspace(workspace, bystander, users_enums.WorkspaceRoleMember)

	first := createTestTask(t, workspace.ID, project.ID, author, "First")
	second := createTestTask(t, workspace.ID, project.ID, author, "Second")

	test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/task/%s/%s", workspace.ID, first.ID),
		"Bearer "+bystander.Token,
		http.StatusForbidden,
	)

	test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/task/%s/%s", workspace.ID, first.ID),
		"Bearer "+author.Token,
		http.StatusOK,
	)

	test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/task/%s/%s", workspace.ID, second.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	tasks, err := GetTaskService().GetWorkspaceTasks(workspace.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func Test_GetTask_FromAnotherWorkspace_ReturnsNotFound(t *testing.T) {
	router := createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	workspace, project := createWorkspaceWithProject(t, owner)
	otherWorkspace, _ := createWorkspaceWithProject(t, owner)
	task := createTestTask(t, workspace.ID, project.ID, owner, "Secret")

	resp := test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/task/%s/%s", otherWorkspace.ID, task.ID),
		"Bearer "+owner.Token,
		http.StatusNotFound,
	)
	assert.NotContains(t, string(resp.Body), "Secret")
}

func Test_DeleteProject_RemovesItsTasks(t *testing.T) {
	createTaskTestRouter()
	owner := users_testing.CreateTestUser()
	workspace, project := createWorkspaceWithProject(t, owner)
	createTestTask(t, workspace.ID, project.ID, owner, "Login page")

	err := projects.GetProjectService().DeleteProject(
		workspace.ID,
		project.ID,
		users_testing.GetTestUser(owner.UserID),
	)
	require.NoError(t, err)

	total, err := GetTaskService().CountWorkspaceTasks(workspace.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func createWorkspaceWithProject(
	t *testing.T,
	owner *users_dto.SignInResponseDTO,
) (*workspaces_models.Workspace, *projects.Project) {
	workspace := workspaces_testing.CreateTestWorkspace("Acme "+uuid.NewString()[:8], owner)

	project, err := projects.GetProjectService().CreateProject(
		workspace.ID,
		&projects.CreateProjectRequest{Name: "Website"},
		users_testing.GetTestUser(owner.UserID),
	)
	require.NoError(t, err)

	return workspace, project
}

func createTestTask(
	t *testing.T,
	workspaceID uuid.UUID,
	projectID uuid.UUID,
	creator *users_dto.SignInResponseDTO,
	title string,
) *TaskDTO {
	task, err := GetTaskService().CreateTask(
		workspaceID,
		&CreateTaskRequest{Title: title, ProjectID: projectID},
		users_testing.GetTestUser(creator.UserID),
	)
	require.NoError(t, err)

	return task
}
