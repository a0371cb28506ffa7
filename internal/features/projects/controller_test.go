package projects

import (
	"fmt"
	"net/http"
	"testing"

	"picktask-backend/internal/features/audit_logs"
	users_enums "picktask-backend/internal/features/users/enums"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_testing "picktask-backend/internal/features/workspaces/testing"
	test_utils "picktask-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProjectTestRouter() *gin.Engine {
	router := workspaces_testing.CreateTestRouter(GetProjectController())
	SetupDependencies()

	return router
}

func Test_CreateProject_ByMember_StoresProjectAndActivity(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.AddMemberToWorkspace(workspace, member, users_enums.WorkspaceRoleMember)

	var project Project
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/create", workspace.ID),
		"Bearer "+member.Token,
		CreateProjectRequest{Name: "  Website  ", Description: "Marketing site"},
		http.StatusOK,
		&project,
	)

	assert.Equal(t, "Website", project.Name)
	assert.Equal(t, DefaultProjectColor, project.Color)
	assert.Equal(t, workspace.ID, project.WorkspaceID)
	assert.Equal(t, member.UserID, project.CreatedBy)

	logs, err := audit_logs.GetAuditLogService().GetUserActivity(workspace.ID, member.UserID, 1)
	require.NoError(t, err)
	require.Len(t, logs.AuditLogs, 1)
	assert.Equal(t, "created project 'Website'", logs.AuditLogs[0].Message)
}

func Test_CreateProject_WithInvalidColor_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)

	resp := test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/create", workspace.ID),
		"Bearer "+owner.Token,
		CreateProjectRequest{Name: "Website", Color: "blue"},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Color must be a hex value")
}

func Test_ProjectEndpoints_ByNonMember_AreDeniedWithoutMutation(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	project := createTestProject(t, workspace.ID, owner.UserID, "Website")

	resp := test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/%s", workspace.ID, project.ID),
		"Bearer "+stranger.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "don't have access")
	assert.NotContains(t, string(resp.Body), "Website")

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/create", workspace.ID),
		"Bearer "+stranger.Token,
		CreateProjectRequest{Name: "Intruder"},
		http.StatusForbidden,
	)

	newName := "Renamed"
	test_utils.MakePutRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/%s", workspace.ID, project.ID),
		"Bearer "+stranger.Token,
		UpdateProjectRequest{Name: &newName},
		http.StatusForbidden,
	)

	projects, err := GetProjectService().GetWorkspaceProjects(workspace.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Website", projects[0].Name)

	logs, err := audit_logs.GetAuditLogService().GetUserActivity(workspace.ID, stranger.UserID, 1)
	require.NoError(t, err)
	assert.Empty(t, logs.AuditLogs)
}

func Test_GetProject_FromAnotherWorkspace_ReturnsNotFound(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	first := workspaces_testing.CreateTestWorkspace("First", owner)
	second := workspaces_testing.CreateTestWorkspace("Second", owner)
	project := createTestProject(t, first.ID, owner.UserID, "Website")

	test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/%s", second.ID, project.ID),
		"Bearer "+owner.Token,
		http.StatusNotFound,
	)
}

func Test_UpdateProject_ChangesOnlyProvidedFields(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	project := createTestProject(t, workspace.ID, owner.UserID, "Website")

	color := "#10B981"
	var updated Project
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/%s", workspace.ID, project.ID),
		"Bearer "+owner.Token,
		UpdateProjectRequest{Color: &color},
		http.StatusOK,
		&updated,
	)

	assert.Equal(t, "Website", updated.Name)
	assert.Equal(t, "Marketing", updated.Description)
	assert.Equal(t, color, updated.Color)
}

func Test_DeleteProject_RequiresAdmin(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.AddMemberToWorkspace(workspace, member, users_enums.WorkspaceRoleMember)
	project := createTestProject(t, workspace.ID, owner.UserID, "Website")

	test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/%s", workspace.ID, project.ID),
		"Bearer "+member.Token,
		http.StatusForbidden,
	)

	found, err := GetProjectService().FindProject(workspace.ID, project.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)

	test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/projects/%s", workspace.ID, project.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	found, err = GetProjectService().FindProject(workspace.ID, project.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	logs, err := audit_logs.GetAuditLogService().GetUserActivity(workspace.ID, owner.UserID, 1)
	require.NoError(t, err)
	assert.Equal(t, "deleted project 'Website'", logs.AuditLogs[0].Message)
}

func createTestProject(t *testing.T, workspaceID, ownerID uuid.UUID, name string) *Project {
	project, err := GetProjectService().CreateProject(
		workspaceID,
		&CreateProjectRequest{Name: name, Description: "Marketing"},
		users_testing.GetTestUser(ownerID),
	)
	require.NoError(t, err)

	return project
}
