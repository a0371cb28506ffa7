package projects

import (
	"fmt"
	"net/http"

	"picktask-backend/internal/features/sessions"
	users_middleware "picktask-backend/internal/features/users/middleware"
	users_models "picktask-backend/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectService *ProjectService
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/workspace/:workspaceId/projects")

	projectRoutes.GET("", c.GetProjects)
	projectRoutes.POST("/create", c.CreateProject)
	projectRoutes.GET("/:projectId", c.GetProject)
	projectRoutes.PUT("/:projectId", c.UpdateProject)
	projectRoutes.DELETE("/:projectId", c.DeleteProject)
}

// CreateProject
// @Summary Create a project
// @Description Create a project in the workspace. Any member can create projects.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param request body CreateProjectRequest true "Project data"
// @Success 200 {object} Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspace/{workspaceId}/projects/create [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
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

	var request CreateProjectRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.CreateProject(workspaceID, &request, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	sessions.Flash(
		ctx,
		sessions.FlashLevelSuccess,
		fmt.Sprintf("Project '%s' created successfully!", project.Name),
	)

	ctx.JSON(http.StatusOK, project)
}

// GetProjects
// @Summary List projects
// @Description List the workspace's projects, newest first
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} ListProjectsResponse
// @Failure 403 {object} map[string]string
// @Router /workspace/{workspaceId}/projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
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

	response, err := c.projectService.GetProjects(workspaceID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProject
// @Summary Get project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} Project
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspace/{workspaceId}/projects/{projectId} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	user, workspaceID, projectID, ok := c.parseProjectRequest(ctx)
	if !ok {
		return
	}

	project, err := c.projectService.GetProject(workspaceID, projectID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// UpdateProject
// @Summary Update project
// @Description Update name, description or color. Any member can update projects.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Param request body UpdateProjectRequest true "Project data"
// @Success 200 {object} Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspace/{workspaceId}/projects/{projectId} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	user, workspaceID, projectID, ok := c.parseProjectRequest(ctx)
	if !ok {
		return
	}

	var request UpdateProjectRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.UpdateProject(workspaceID, projectID, &request, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// DeleteProject
// @Summary Delete project
// @Description Delete the project with its tasks, comments and attachments. Admin only.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspace/{workspaceId}/projects/{projectId} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	user, workspaceID, projectID, ok := c.parseProjectRequest(ctx)
	if !ok {
		return
	}

	if err := c.projectService.DeleteProject(workspaceID, projectID, user); err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	if sessionID, ok := sessions.GetSessionIDFromContext(ctx); ok {
		state, err := sessions.GetSessionStore().Get(ctx.Request.Context(), sessionID)
		if err == nil && state.CurrentProjectID != nil && *state.CurrentProjectID == projectID {
			_ = sessions.GetSessionStore().Delete(
				ctx.Request.Context(),
				sessionID,
				sessions.KeyCurrentProjectID,
			)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (c *ProjectController) parseProjectRequest(
	ctx *gin.Context,
) (*users_models.User, uuid.UUID, uuid.UUID, bool) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, uuid.Nil, uuid.Nil, false
	}

	workspaceID, err := uuid.Parse(ctx.Param("workspaceId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return nil, uuid.Nil, uuid.Nil, false
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return nil, uuid.Nil, uuid.Nil, false
	}

	return user, workspaceID, projectID, true
}
