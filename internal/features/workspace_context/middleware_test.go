package workspace_context

import (
	"errors"
	"net/http"
	"testing"

	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/sessions"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	workspaces_testing "picktask-backend/internal/features/workspaces/testing"
	test_utils "picktask-backend/internal/util/testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolvedContextEcho struct{}

func (e *resolvedContextEcho) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/context-echo", func(ctx *gin.Context) {
		resolved, ok := GetResolvedContext(ctx)
		if !ok {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "context is not resolved"})
			return
		}

		ctx.JSON(http.StatusOK, resolved)
	})
}

type failingMembershipReader struct{}

func (f *failingMembershipReader) GetUserMemberships(
	userID uuid.UUID,
) ([]*workspaces_models.WorkspaceMembership, []*workspaces_models.Workspace, error) {
	return nil, nil, errors.New("database is unavailable")
}

func createEchoRouter(resolver *ContextResolver) *gin.Engine {
	return workspaces_testing.CreateTestRouterWithMiddlewares(
		[]gin.HandlerFunc{ContextMiddleware(resolver)},
		&resolvedContextEcho{},
	)
}

func unreachableSessionStore(t *testing.T) *sessions.SessionStore {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	return sessions.NewSessionStore(client)
}

func Test_ContextMiddleware_WithUnreachableSessionStore_StillServesRequest(t *testing.T) {
	resolver := &ContextResolver{
		workspaces_services.GetWorkspaceService(),
		projects.GetProjectService(),
		unreachableSessionStore(t),
	}
	router := createEchoRouter(resolver)

	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Acme", owner)

	var resolved ResolvedContext
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/context-echo",
		"Bearer "+owner.Token,
		http.StatusOK,
		&resolved,
	)

	require.NotNil(t, resolved.Workspace)
	assert.Equal(t, workspace.ID, resolved.Workspace.ID)
}

func Test_ContextMiddleware_WhenMembershipsCannotBeRead_ServesEmptyContext(t *testing.T) {
	resolver := &ContextResolver{
		&failingMembershipReader{},
		projects.GetProjectService(),
		sessions.GetSessionStore(),
	}
	router := createEchoRouter(resolver)

	owner := users_testing.CreateTestUser()
	workspaces_testing.CreateTestWorkspace("Acme", owner)

	var resolved ResolvedContext
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/context-echo",
		"Bearer "+owner.Token,
		http.StatusOK,
		&resolved,
	)

	assert.Nil(t, resolved.Workspace)
	assert.Nil(t, resolved.Project)
	assert.Empty(t, resolved.Workspaces)
}
