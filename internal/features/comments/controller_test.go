package comments

import (
	"fmt"
	"net/http"
	"testing"

	"picktask-backend/internal/features/tasks"
	tasks_testing "picktask-backend/internal/features/tasks/testing"
	users_enums "picktask-backend/internal/features/users/enums"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_testing "picktask-backend/internal/features/workspaces/testing"
	test_utils "picktask-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCommentTestRouter() *gin.Engine {
	router := workspaces_testing.CreateTestRouter(GetCommentController())
	tasks_testing.SetupDependencies()
	SetupDependencies()

	return router
}

func Test_AddComment_ListsInChronologicalOrder(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	project := tasks_testing.CreateTestProject(workspace.ID, owner, "Website")
	task := tasks_testing.CreateTestTask(workspace.ID, project.ID, owner, "Login page", nil)

	url := fmt.Sprintf("/api/v1/task/%s/%s/comments", workspace.ID, task.ID)
	for _, content := range []string{"first", "second"} {
		test_utils.MakePostRequest(
			t,
			router,
			url,
			"Bearer "+owner.Token,
			AddCommentRequest{Content: content},
			http.StatusOK,
		)
	}

	var response ListCommentsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router, url, "Bearer "+owner.Token, http.StatusOK, &response)

	require.Len(t, response.Comments, 2)
	assert.Equal(t, "first", response.Comments[0].Content)
	assert.Equal(t, "second", response.Comments[1].Content)
	assert.Equal(t, owner.Username, response.Comments[0].AuthorUsername)
}

func Test_AddComment_ByNonMember_IsDenied(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	stranger := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	project := tasks_testing.CreateTestProject(workspace.ID, owner, "Website")
	task := tasks_testing.CreateTestTask(workspace.ID, project.ID, owner, "Login page", nil)

	test_utils.MakePostRequest(
		t,
		router,
		fmt.Sprintf("/api/v1/task/%s/%s/comments", workspace.ID, task.ID),
		"Bearer "+stranger.Token,
		AddCommentRequest{Content: "hello"},
		http.StatusForbidden,
	)

	response, err := GetCommentService().GetComments(
		workspace.ID,
		task.ID,
		users_testing.GetTestUser(owner.UserID),
	)
	require.NoError(t, err)
	assert.Empty(t, response.Comments)
}

func Test_DeleteComment_AllowedForAuthorAndAdmin(t *testing.T) {
	router := createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	author := users_testing.CreateTestUser()
	other := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.AddMemberToWorkspace(workspace, author, users_enums.WorkspaceRoleMember)
	workspaces_testing.AddMemberToWorkspace(workspace, other, users_enums.WorkspaceRoleMember)
	project := tasks_testing.CreateTestProject(workspace.ID, owner, "Website")
	task := tasks_testing.CreateTestTask(workspace.ID, project.ID, owner, "Login page", nil)

	first, err := GetCommentService().AddComment(
		workspace.ID,
		task.ID,
		&AddCommentRequest{Content: "first"},
		users_testing.GetTestUser(author.UserID),
	)
	require.NoError(t, err)
	second, err := GetCommentService().AddComment(
		workspace.ID,
		task.ID,
		&AddCommentRequest{Content: "second"},
		users_testing.GetTestUser(author.UserID),
	)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("/api/v1/task/%s/%s/comments/", workspace.ID, task.ID)

	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		baseURL+first.ID.String(),
		"Bearer "+other.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "You can only delete your own comments")

	test_utils.MakeDeleteRequest(t, router, baseURL+first.ID.String(), "Bearer "+author.Token, http.StatusOK)
	test_utils.MakeDeleteRequest(t, router, baseURL+second.ID.String(), "Bearer "+owner.Token, http.StatusOK)
	test_utils.MakeDeleteRequest(t, router, baseURL+second.ID.String(), "Bearer "+owner.Token, http.StatusNotFound)
}

func Test_DeleteTask_RemovesItsComments(t *testing.T) {
	createCommentTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)
	project := tasks_testing.CreateTestProject(workspace.ID, owner, "Website")
	task := tasks_testing.CreateTestTask(workspace.ID, project.ID, owner, "Login page", nil)

	_, err := GetCommentService().AddComment(
		workspace.ID,
		task.ID,
		&AddCommentRequest{Content: "soon gone"},
		users_testing.GetTestUser(owner.UserID),
	)
	require.NoError(t, err)

	comments, err := commentRepository.GetByTask(task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	require.NoError(t, tasks.GetTaskService().DeleteTask(
		workspace.ID,
		task.ID,
		users_testing.GetTestUser(owner.UserID),
	))

	comments, err = commentRepository.GetByTask(task.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
