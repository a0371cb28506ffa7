package workspaces_middleware

import (
	"net/http"

	"picktask-backend/internal/features/sessions"
	users_middleware "picktask-backend/internal/features/users/middleware"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	workspaces_services "picktask-backend/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextWorkspaceKey  = "workspace"
	contextMembershipKey = "workspaceMembership"
)

// RequireWorkspaceMember runs the membership gate for the workspace named by
// the path parameter before the handler executes.
func RequireWorkspaceMember(
	workspaceService *workspaces_services.WorkspaceService,
	paramName string,
) gin.HandlerFunc {
	return requireWorkspaceAccess(workspaceService, paramName, false)
}

// RequireWorkspaceAdmin is RequireWorkspaceMember restricted to admins.
func RequireWorkspaceAdmin(
	workspaceService *workspaces_services.WorkspaceService,
	paramName string,
) gin.HandlerFunc {
	return requireWorkspaceAccess(workspaceService, paramName, true)
}

func GetWorkspaceFromContext(ctx *gin.Context) (*workspaces_models.Workspace, bool) {
	value, exists := ctx.Get(contextWorkspaceKey)
	if !exists {
		return nil, false
	}

	workspace, ok := value.(*workspaces_models.Workspace)
	return workspace, ok
}

func GetMembershipFromContext(ctx *gin.Context) (*workspaces_models.WorkspaceMembership, bool) {
	value, exists := ctx.Get(contextMembershipKey)
	if !exists {
		return nil, false
	}

	membership, ok := value.(*workspaces_models.WorkspaceMembership)
	return membership, ok
}

func requireWorkspaceAccess(
	workspaceService *workspaces_services.WorkspaceService,
	paramName string,
	adminOnly bool,
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := users_middleware.GetUserFromContext(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		workspaceID, err := uuid.Parse(ctx.Param(paramName))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
			return
		}

		var (
			workspace  *workspaces_models.Workspace
			membership *workspaces_models.WorkspaceMembership
		)

		if adminOnly {
			workspace, membership, err = workspaceService.RequireAdmin(workspaceID, user)
		} else {
			workspace, membership, err = workspaceService.RequireMembership(workspaceID, user)
		}

		if err != nil {
			sessions.AbortWithError(ctx, err)
			return
		}

		ctx.Set(contextWorkspaceKey, workspace)
		ctx.Set(contextMembershipKey, membership)

		ctx.Next()
	}
}
