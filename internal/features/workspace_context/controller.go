package workspace_context

import (
	"fmt"
	"net/http"

	"picktask-backend/internal/features/sessions"
	users_middleware "picktask-backend/internal/features/users/middleware"
	"picktask-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceContextController struct {
	workspaceContextService *WorkspaceContextService
	contextResolver         *ContextResolver
}

func (c *WorkspaceContextController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/workspace/dashboard", c.GetDashboard)
	router.GET("/workspace/:workspaceId", c.GetWorkspaceDetails)
	router.POST("/workspace/:workspaceId/select-project/:projectId", c.SelectProject)
	router.GET("/workspace/:workspaceId/project/:projectId/dashboard", c.GetProjectDashboard)
}

// GetDashboard
// @Summary Dashboard
// @Description Current workspace and project, recent activity, task totals and pending flash messages
// @Tags workspace-context
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} map[string]string
// @Router /workspace/dashboard [get]
func (c *WorkspaceContextController) GetDashboard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	resolved, ok := GetResolvedContext(ctx)
	if !ok {
		resolved = c.contextResolver.ResolveRequest(ctx, user)
	}

	response, err := c.workspaceContextService.GetDashboard(resolved)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	response.Messages = make([]sessions.FlashMessage, 0)
	if sessionID, ok := sessions.GetSessionIDFromContext(ctx); ok {
		messages, err := sessions.GetSessionStore().PopFlashes(ctx.Request.Context(), sessionID)
		if err != nil {
			logger.GetLogger().Warn("Failed to read flash messages", "error", err)
		} else {
			response.Messages = messages
		}
	}

	ctx.JSON(http.StatusOK, response)
}

// GetWorkspaceDetails
// @Summary Workspace overview
// @Description Projects, task total and recent activity of a workspace the user belongs to
// @Tags workspace-context
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} WorkspaceDetailsResponse
// @Failure 302 {string} string "Browser requests without access are redirected to the dashboard"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspace/{workspaceId} [get]
func (c *WorkspaceContextController) GetWorkspaceDetails(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("workspaceId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	response, err := c.workspaceContextService.GetWorkspaceDetails(workspaceID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// SelectProject
// @Summary Select current project
// @Description Stores the workspace and project as the session's current ones
// @Tags workspace-context
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} SelectProjectResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspace/{workspaceId}/select-project/{projectId} [post]
func (c *WorkspaceContextController) SelectProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, projectID, ok := parseProjectPath(ctx)
	if !ok {
		return
	}

	project, err := c.workspaceContextService.SelectProject(workspaceID, projectID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	if sessionID, ok := sessions.GetSessionIDFromContext(ctx); ok {
		changes := &SessionChanges{}
		changes.set(sessions.KeyCurrentWorkspaceID, workspaceID)
		changes.set(sessions.KeyCurrentProjectID, project.ID)

		if err := applySessionChanges(
			ctx.Request.Context(),
			sessions.GetSessionStore(),
			sessionID,
			changes,
		); err != nil {
			sessions.AbortWithError(ctx, fmt.Errorf("failed to select project: %w", err))
			return
		}
	}

	message := fmt.Sprintf("Switched to project '%s'", project.Name)
	sessions.Flash(ctx, sessions.FlashLevelSuccess, message)

	ctx.JSON(http.StatusOK, SelectProjectResponse{Message: message, Project: project})
}

// GetProjectDashboard
// @Summary Project dashboard
// @Description Task counts of the project per status column
// @Tags workspace-context
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} ProjectDashboardResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspace/{workspaceId}/project/{projectId}/dashboard [get]
func (c *WorkspaceContextController) GetProjectDashboard(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, projectID, ok := parseProjectPath(ctx)
	if !ok {
		return
	}

	response, err := c.workspaceContextService.GetProjectDashboard(workspaceID, projectID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func parseProjectPath(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	workspaceID, err := uuid.Parse(ctx.Param("workspaceId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return uuid.Nil, uuid.Nil, false
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return uuid.Nil, uuid.Nil, false
	}

	return workspaceID, projectID, true
}
