package workspace_context

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"picktask-backend/internal/features/sessions"
	tasks_testing "picktask-backend/internal/features/tasks/testing"
	users_enums "picktask-backend/internal/features/users/enums"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_controllers "picktask-backend/internal/features/workspaces/controllers"
	workspaces_dto "picktask-backend/internal/features/workspaces/dto"
	workspaces_testing "picktask-backend/internal/features/workspaces/testing"
	test_utils "picktask-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createContextTestRouter() *gin.Engine {
	router := workspaces_testing.CreateTestRouterWithMiddlewares(
		[]gin.HandlerFunc{ContextMiddleware(GetContextResolver())},
		GetWorkspaceContextController(),
		workspaces_controllers.GetWorkspaceController(),
	)
	tasks_testing.SetupDependencies()

	return router
}

func Test_Dashboard_AfterCreatingFirstWorkspace(t *testing.T) {
	router := createContextTestRouter()
	user := users_testing.CreateTestUser()

	var empty DashboardResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/dashboard",
		"Bearer "+user.Token,
		http.StatusOK,
		&empty,
	)
	assert.Nil(t, empty.CurrentWorkspace)
	assert.Empty(t, empty.Workspaces)

	var created workspaces_dto.WorkspaceResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/create",
		"Bearer "+user.Token,
		workspaces_dto.CreateWorkspaceRequestDTO{Name: "Acme"},
		http.StatusOK,
		&created,
	)

	var dashboard DashboardResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/dashboard",
		"Bearer "+user.Token,
		http.StatusOK,
		&dashboard,
	)

	require.NotNil(t, dashboard.CurrentWorkspace)
	assert.Equal(t, created.ID, dashboard.CurrentWorkspace.ID)
	require.NotNil(t, dashboard.UserRole)
	assert.Equal(t, users_enums.WorkspaceRoleAdmin, *dashboard.UserRole)
	require.Len(t, dashboard.RecentActivities, 1)
	assert.Equal(t, "created workspace 'Acme'", dashboard.RecentActivities[0].Message)
	require.Len(t, dashboard.Messages, 1)
	assert.Equal(t, "Workspace 'Acme' created successfully!", dashboard.Messages[0].Message)

	// flash messages are shown once
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/dashboard",
		"Bearer "+user.Token,
		http.StatusOK,
		&dashboard,
	)
	assert.Empty(t, dashboard.Messages)
}

func Test_WorkspaceDetails_ByNonMember_RedirectsBrowserWithFlash(t *testing.T) {
	router := createContextTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	url := fmt.Sprintf("/api/v1/workspace/%s", workspace.ID)

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      "Bearer " + stranger.Token,
		Headers:        map[string]string{"Accept": "text/html"},
		ExpectedStatus: http.StatusFound,
	})
	assert.Equal(t, sessions.DashboardPath, resp.Headers.Get("Location"))

	var dashboard DashboardResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/dashboard",
		"Bearer "+stranger.Token,
		http.StatusOK,
		&dashboard,
	)
	require.Len(t, dashboard.Messages, 1)
	assert.Equal(t, sessions.FlashLevelError, dashboard.Messages[0].Level)
	assert.Equal(t, "You don't have access to this workspace", dashboard.Messages[0].Message)
	assert.Nil(t, dashboard.CurrentWorkspace)

	test_utils.MakeGetRequest(t, router, url, "Bearer "+stranger.Token, http.StatusForbidden)

	state, err := sessions.GetSessionStore().Get(
		context.Background(),
		users_testing.GetSessionID(stranger.Token),
	)
	require.NoError(t, err)
	assert.Nil(t, state.CurrentWorkspaceID)
}

func Test_WorkspaceDetails_ByMember_BecomesCurrentWorkspace(t *testing.T) {
	router := createContextTestRouter()
	owner := users_testing.CreateTestUser()
	acme := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.CreateTestWorkspace("Globex", owner)
	tasks_testing.CreateTestProject(acme.ID, owner, "Website")

	var details WorkspaceDetailsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s", acme.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
		&details,
	)
	assert.Equal(t, acme.ID, details.Workspace.ID)
	assert.Len(t, details.Projects, 1)
	assert.Equal(t, users_enums.WorkspaceRoleAdmin, details.UserRole)

	state, err := sessions.GetSessionStore().Get(
		context.Background(),
		users_testing.GetSessionID(owner.Token),
	)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentWorkspaceID)
	assert.Equal(t, acme.ID, *state.CurrentWorkspaceID)
}

func Test_SelectProject_StoresSelectionAndShowsOnDashboard(t *testing.T) {
	router := createContextTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	acme := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.AddMemberToWorkspace(acme, member, users_enums.WorkspaceRoleMember)
	website := tasks_testing.CreateTestProject(acme.ID, owner, "Website")
	tasks_testing.CreateTestProject(acme.ID, owner, "Mobile")

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/select-project/%s", acme.ID, website.ID),
		"Bearer "+member.Token,
		nil,
		http.StatusOK,
	)

	var dashboard DashboardResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/dashboard",
		"Bearer "+member.Token,
		http.StatusOK,
		&dashboard,
	)

	require.NotNil(t, dashboard.CurrentProject)
	assert.Equal(t, website.ID, dashboard.CurrentProject.ID)
	assert.Equal(t, acme.ID, dashboard.CurrentWorkspace.ID)
	require.NotEmpty(t, dashboard.Messages)
	assert.Equal(t, "Switched to project 'Website'", dashboard.Messages[0].Message)

	globex := workspaces_testing.CreateTestWorkspace("Globex", owner)
	globexProject := tasks_testing.CreateTestProject(globex.ID, owner, "Billing")
	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/select-project/%s", globex.ID, globexProject.ID),
		"Bearer "+member.Token,
		nil,
		http.StatusForbidden,
	)
	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/select-project/%s", acme.ID, globexProject.ID),
		"Bearer "+member.Token,
		nil,
		http.StatusNotFound,
	)
}

func Test_ProjectDashboard_CountsTasksPerColumn(t *testing.T) {
	router := createContextTestRouter()
	owner := users_testing.CreateTestUser()
	acme := workspaces_testing.CreateTestWorkspace("Acme", owner)
	website := tasks_testing.CreateTestProject(acme.ID, owner, "Website")
	mobile := tasks_testing.CreateTestProject(acme.ID, owner, "Mobile")

	tasks_testing.CreateTestTask(acme.ID, website.ID, owner, "A", nil)
	tasks_testing.CreateTestTask(acme.ID, website.ID, owner, "B", nil)
	tasks_testing.CreateTestTask(acme.ID, mobile.ID, owner, "C", nil)

	var response ProjectDashboardResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspace/%s/project/%s/dashboard", acme.ID, website.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, int64(2), response.TotalTasks)
	require.Len(t, response.Columns, 4)
	assert.Equal(t, "To Do", response.Columns[0].Column.Name)
	assert.Equal(t, int64(2), response.Columns[0].TaskCount)
	assert.Zero(t, response.Columns[3].TaskCount)

	var dashboard DashboardResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/dashboard",
		"Bearer "+owner.Token,
		http.StatusOK,
		&dashboard,
	)
	assert.Equal(t, int64(3), dashboard.TotalTasks)
	assert.Zero(t, dashboard.CompletedTasks)
}
