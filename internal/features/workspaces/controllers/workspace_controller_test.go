package workspaces_controllers

import (
	"context"
	"net/http"
	"testing"

	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/sessions"
	"picktask-backend/internal/features/status_columns"
	users_enums "picktask-backend/internal/features/users/enums"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_dto "picktask-backend/internal/features/workspaces/dto"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	workspaces_testing "picktask-backend/internal/features/workspaces/testing"
	test_utils "picktask-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createWorkspaceTestRouter() *gin.Engine {
	return workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		GetMembershipController(),
	)
}

func Test_CreateWorkspace_CreatesAdminMembershipColumnsAndActivity(t *testing.T) {
	router := createWorkspaceTestRouter()
	owner := users_testing.CreateTestUser()

	var response workspaces_dto.WorkspaceResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/create",
		"Bearer "+owner.Token,
		workspaces_dto.CreateWorkspaceRequestDTO{Name: "Acme"},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, "Acme", response.Name)
	require.NotNil(t, response.UserRole)
	assert.Equal(t, users_enums.WorkspaceRoleAdmin, *response.UserRole)

	membership := workspaces_testing.GetMembership(response.ID, owner.UserID)
	require.NotNil(t, membership)
	assert.Equal(t, users_enums.WorkspaceRoleAdmin, membership.Role)

	columns, err := status_columns.GetStatusColumnService().GetColumns(response.ID)
	require.NoError(t, err)
	assert.Len(t, columns, len(status_columns.DefaultColumnNames))

	logs, err := audit_logs.GetAuditLogService().GetWorkspaceAuditLogs(
		response.ID,
		&audit_logs.GetAuditLogsRequest{},
	)
	require.NoError(t, err)
	require.Len(t, logs.AuditLogs, 1)
	assert.Equal(t, "created workspace 'Acme'", logs.AuditLogs[0].Message)
	assert.Equal(t, owner.UserID, *logs.AuditLogs[0].UserID)

	state, err := sessions.GetSessionStore().Get(
		context.Background(),
		users_testing.GetSessionID(owner.Token),
	)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentWorkspaceID)
	assert.Equal(t, response.ID, *state.CurrentWorkspaceID)
}

func Test_CreateWorkspace_WithoutName_ReturnsBadRequest(t *testing.T) {
	router := createWorkspaceTestRouter()
	owner := users_testing.CreateTestUser()

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspace/create",
		"Bearer "+owner.Token,
		map[string]string{"name": ""},
		http.StatusBadRequest,
	)
}

func Test_WorkspaceName_WithLineBreaks_IsRejected(t *testing.T) {
	router := createWorkspaceTestRouter()
	owner := users_testing.CreateTestUser()
	injectedName := "Acme\r\nBcc: attacker@evil.test"

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspace/create",
		"Bearer "+owner.Token,
		map[string]string{"name": injectedName},
		http.StatusBadRequest,
	)

	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/workspace/"+workspace.ID.String(),
		"Bearer "+owner.Token,
		workspaces_dto.UpdateWorkspaceRequestDTO{Name: injectedName},
		http.StatusBadRequest,
	)

	stored, err := workspaces_services.GetWorkspaceService().GetWorkspaceByID(workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.Name)
}

func Test_GetWorkspaces_ReturnsOnlyUserWorkspacesNewestJoinedFirst(t *testing.T) {
	router := createWorkspaceTestRouter()
	user := users_testing.CreateTestUser()
	other := users_testing.CreateTestUser()

	first := workspaces_testing.CreateTestWorkspace("First", user)
	second := workspaces_testing.CreateTestWorkspace("Second", user)
	workspaces_testing.CreateTestWorkspace("Foreign", other)

	var response workspaces_dto.ListWorkspacesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspace/list",
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Workspaces, 2)
	assert.Equal(t, second.ID, response.Workspaces[0].ID)
	assert.Equal(t, first.ID, response.Workspaces[1].ID)
	require.NotNil(t, response.Workspaces[0].UserRole)
	assert.Equal(t, users_enums.WorkspaceRoleAdmin, *response.Workspaces[0].UserRole)
}

func Test_UpdateWorkspace_PermissionsEnforced(t *testing.T) {
	tests := []struct {
		name               string
		workspaceRole      *users_enums.WorkspaceRole
		expectedStatusCode int
	}{
		{
			name:               "admin can rename workspace",
			workspaceRole:      rolePtr(users_enums.WorkspaceRoleAdmin),
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "member cannot rename workspace",
			workspaceRole:      rolePtr(users_enums.WorkspaceRoleMember),
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "non-member cannot rename workspace",
			workspaceRole:      nil,
			expectedStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := createWorkspaceTestRouter()
			owner := users_testing.CreateTestUser()
			workspace := workspaces_testing.CreateTestWorkspace("Original", owner)

			caller := users_testing.CreateTestUser()
			if tt.workspaceRole != nil {
				workspaces_testing.AddMemberToWorkspace(workspace, caller, *tt.workspaceRole)
			}

			test_utils.MakePutRequest(
				t,
				router,
				"/api/v1/workspace/"+workspace.ID.String(),
				"Bearer "+caller.Token,
				workspaces_dto.UpdateWorkspaceRequestDTO{Name: "Renamed"},
				tt.expectedStatusCode,
			)

			stored, err := workspaces_services.GetWorkspaceService().GetWorkspaceByID(workspace.ID)
			require.NoError(t, err)

			if tt.expectedStatusCode == http.StatusOK {
				assert.Equal(t, "Renamed", stored.Name)
			} else {
				assert.Equal(t, "Original", stored.Name)
				assertNoActivityFrom(t, workspace.ID, caller.UserID)
			}
		})
	}
}

func Test_UpdateWorkspace_UnknownWorkspace_ReturnsNotFound(t *testing.T) {
	router := createWorkspaceTestRouter()
	user := users_testing.CreateTestUser()

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/workspace/"+uuid.NewString(),
		"Bearer "+user.Token,
		workspaces_dto.UpdateWorkspaceRequestDTO{Name: "Renamed"},
		http.StatusNotFound,
	)
}

func Test_DeleteWorkspace_RemovesOwnedData(t *testing.T) {
	router := createWorkspaceTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Doomed", owner)
	workspaces_testing.AddMemberToWorkspace(workspace, member, users_enums.WorkspaceRoleMember)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/workspace/"+workspace.ID.String(),
		"Bearer "+member.Token,
		http.StatusForbidden,
	)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/workspace/"+workspace.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	stored, err := workspaces_services.GetWorkspaceService().GetWorkspaceByID(workspace.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.Nil(t, workspaces_testing.GetMembership(workspace.ID, owner.UserID))
	assert.Nil(t, workspaces_testing.GetMembership(workspace.ID, member.UserID))

	logs, err := audit_logs.GetAuditLogService().GetWorkspaceAuditLogs(
		workspace.ID,
		&audit_logs.GetAuditLogsRequest{},
	)
	require.NoError(t, err)
	assert.Empty(t, logs.AuditLogs)
}

func rolePtr(role users_enums.WorkspaceRole) *users_enums.WorkspaceRole {
	return &role
}

func assertNoActivityFrom(t *testing.T, workspaceID uuid.UUID, userID uuid.UUID) {
	logs, err := audit_logs.GetAuditLogService().GetUserActivity(workspaceID, userID, 1)
	require.NoError(t, err)
	assert.Empty(t, logs.AuditLogs)
}

