package groups

import (
	"fmt"
	"net/http"
	"testing"

	"picktask-backend/internal/features/audit_logs"
	users_dto "picktask-backend/internal/features/users/dto"
	users_enums "picktask-backend/internal/features/users/enums"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_controllers "picktask-backend/internal/features/workspaces/controllers"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	workspaces_testing "picktask-backend/internal/features/workspaces/testing"
	test_utils "picktask-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createGroupTestRouter() *gin.Engine {
	router := workspaces_testing.CreateTestRouter(
		GetGroupController(),
		workspaces_controllers.GetMembershipController(),
	)
	SetupDependencies()

	return router
}

func Test_CreateGroup_ByAdmin_AppliesDefaultsAndWritesActivity(t *testing.T) {
	router := createGroupTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)

	group := createTestGroup(t, router, workspace.ID, owner, "Backend", http.StatusOK)
	assert.Equal(t, DefaultGroupColor, group.Color)
	assert.Equal(t, owner.UserID, group.CreatedBy)

	var response ListGroupsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/team/%s/groups", workspace.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)
	require.Len(t, response.Groups, 1)
	assert.Equal(t, "Backend", response.Groups[0].Name)
	assert.Equal(t, int64(0), response.Groups[0].MembersCount)

	assertActivity(t, workspace.ID, "created group 'Backend'")
}

func Test_CreateGroup_DuplicateNameInSameWorkspace_IsRejected(t *testing.T) {
	router := createGroupTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	otherWorkspace := workspaces_testing.CreateTestWorkspace("Globex", owner)

	createTestGroup(t, router, workspace.ID, owner, "Design", http.StatusOK)
	createTestGroup(t, router, workspace.ID, owner, "design", http.StatusBadRequest)
	createTestGroup(t, router, otherWorkspace.ID, owner, "Design", http.StatusOK)
}

func Test_GroupManagement_ByMember_IsForbidden(t *testing.T) {
	router := createGroupTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.AddMemberToWorkspace(workspace, member, users_enums.WorkspaceRoleMember)

	createTestGroup(t, router, workspace.ID, member, "Backend", http.StatusForbidden)
	group := createTestGroup(t, router, workspace.ID, owner, "Backend", http.StatusOK)

	groupURL := fmt.Sprintf("/api/v1/team/%s/groups/%s", workspace.ID, group.ID)
	test_utils.MakeGetRequest(t, router, groupURL, "Bearer "+member.Token, http.StatusForbidden)
	test_utils.MakeDeleteRequest(t, router, groupURL, "Bearer "+member.Token, http.StatusForbidden)

	// members can still see the list
	test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/team/%s/groups", workspace.ID),
		"Bearer "+member.Token,
		http.StatusOK,
	)
	test_utils.MakeGetRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/team/%s/groups", workspace.ID),
		"Bearer "+stranger.Token,
		http.StatusForbidden,
	)
}

func Test_AddGroupMember_RequiresWorkspaceMembership(t *testing.T) {
	router := createGroupTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.AddMemberToWorkspace(workspace, member, users_enums.WorkspaceRoleMember)
	group := createTestGroup(t, router, workspace.ID, owner, "Backend", http.StatusOK)

	groupURL := fmt.Sprintf("/api/v1/team/%s/groups/%s", workspace.ID, group.ID)

	resp := test_utils.MakePostRequest(
		t,
		router,
		groupURL,
		"Bearer "+owner.Token,
		AddGroupMemberRequest{UserID: outsider.UserID},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "must be a member of this workspace")

	test_utils.MakePostRequest(
		t,
		router,
		groupURL,
		"Bearer "+owner.Token,
		AddGroupMemberRequest{UserID: member.UserID},
		http.StatusOK,
	)
	test_utils.MakePostRequest(
		t,
		router,
		groupURL,
		"Bearer "+owner.Token,
		AddGroupMemberRequest{UserID: member.UserID},
		http.StatusBadRequest,
	)

	var details GroupDetailsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router, groupURL, "Bearer "+owner.Token, http.StatusOK, &details)
	require.Len(t, details.Members, 1)
	assert.Equal(t, member.UserID, details.Members[0].UserID)

	assertActivity(t, workspace.ID, fmt.Sprintf("added %s to group 'Backend'", member.Username))

	test_utils.MakeDeleteRequest(
		t,
		router,
		groupURL+"/members/"+details.Members[0].ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
	)
	assertActivity(t, workspace.ID, fmt.Sprintf("removed %s from group 'Backend'", member.Email))

	test_utils.MakeGetRequestAndUnmarshal(t, router, groupURL, "Bearer "+owner.Token, http.StatusOK, &details)
	assert.Empty(t, details.Members)
}

func Test_UpdateGroup_ChangesOnlyProvidedFields(t *testing.T) {
	router := createGroupTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	group := createTestGroup(t, router, workspace.ID, owner, "Backend", http.StatusOK)

	color := "#10B981"
	var updated Group
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/team/%s/groups/%s", workspace.ID, group.ID),
		"Bearer "+owner.Token,
		UpdateGroupRequest{Color: &color},
		http.StatusOK,
		&updated,
	)

	assert.Equal(t, "Backend", updated.Name)
	assert.Equal(t, color, updated.Color)

	invalid := "green"
	test_utils.MakePutRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/team/%s/groups/%s", workspace.ID, group.ID),
		"Bearer "+owner.Token,
		UpdateGroupRequest{Color: &invalid},
		http.StatusBadRequest,
	)
}

func Test_RemoveWorkspaceMember_DropsGroupMemberships(t *testing.T) {
	router := createGroupTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	membership := workspaces_testing.AddMemberToWorkspace(
		workspace,
		member,
		users_enums.WorkspaceRoleMember,
	)
	group := addGroupWithMember(t, workspace, owner, member)

	test_utils.MakeDeleteRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/team/%s/members/%s", workspace.ID, membership.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	inGroup, err := groupRepository.IsGroupMember(group.ID, member.UserID)
	require.NoError(t, err)
	assert.False(t, inGroup)
}

func Test_DeleteWorkspace_RemovesGroups(t *testing.T) {
	createGroupTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.AddMemberToWorkspace(workspace, member, users_enums.WorkspaceRoleMember)
	group := addGroupWithMember(t, workspace, owner, member)

	require.NoError(t, workspaces_services.GetWorkspaceService().DeleteWorkspace(
		workspace.ID,
		users_testing.GetTestUser(owner.UserID),
	))

	found, err := groupRepository.FindByID(workspace.ID, group.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	inGroup, err := groupRepository.IsGroupMember(group.ID, member.UserID)
	require.NoError(t, err)
	assert.False(t, inGroup)
}

func createTestGroup(
	t *testing.T,
	router *gin.Engine,
	workspaceID uuid.UUID,
	user *users_dto.SignInResponseDTO,
	name string,
	expectedStatus int,
) *Group {
	url := fmt.Sprintf("/api/v1/team/%s/groups", workspaceID)
	request := CreateGroupRequest{Name: name}

	if expectedStatus != http.StatusOK {
		test_utils.MakePostRequest(t, router, url, "Bearer "+user.Token, request, expectedStatus)
		return nil
	}

	var group Group
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		url,
		"Bearer "+user.Token,
		request,
		http.StatusOK,
		&group,
	)

	return &group
}

func addGroupWithMember(
	t *testing.T,
	workspace *workspaces_models.Workspace,
	owner *users_dto.SignInResponseDTO,
	member *users_dto.SignInResponseDTO,
) *Group {
	admin := users_testing.GetTestUser(owner.UserID)

	group, err := groupService.CreateGroup(
		workspace.ID,
		&CreateGroupRequest{Name: "Team " + uuid.NewString()[:8]},
		admin,
	)
	require.NoError(t, err)

	_, err = groupService.AddMember(
		workspace.ID,
		group.ID,
		&AddGroupMemberRequest{UserID: member.UserID},
		admin,
	)
	require.NoError(t, err)

	return group
}

func assertActivity(t *testing.T, workspaceID uuid.UUID, message string) {
	response, err := audit_logs.GetAuditLogService().GetWorkspaceAuditLogs(
		workspaceID,
		&audit_logs.GetAuditLogsRequest{Action: message},
	)
	require.NoError(t, err)
	assert.NotEmpty(t, response.AuditLogs, "expected activity %q", message)
}
