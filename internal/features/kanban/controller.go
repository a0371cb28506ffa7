package kanban

import (
	"fmt"
	"net/http"

	"picktask-backend/internal/features/sessions"
	users_middleware "picktask-backend/internal/features/users/middleware"
	users_models "picktask-backend/internal/features/users/models"
	"picktask-backend/internal/util/apperrors"
	"picktask-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type KanbanController struct {
	kanbanService *KanbanService
}

func (c *KanbanController) RegisterRoutes(router *gin.RouterGroup) {
	kanbanRoutes := router.Group("/kanban/:workspaceId")

	kanbanRoutes.GET("", c.GetBoard)
	kanbanRoutes.POST("/update-status", c.UpdateTaskStatus)
	kanbanRoutes.POST("/quick-create", c.QuickCreateTask)
	kanbanRoutes.POST("/columns", c.ManageColumns)
}

// GetBoard
// @Summary Get kanban board
// @Description Status columns with their tasks, optionally limited to one project
// @Tags kanban
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param project query string false "Project ID"
// @Success 200 {object} BoardResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /kanban/{workspaceId} [get]
func (c *KanbanController) GetBoard(ctx *gin.Context) {
	user, workspaceID, ok := parseWorkspacePath(ctx)
	if !ok {
		return
	}

	var projectID *uuid.UUID
	if value := ctx.Query("project"); value != "" {
		id, err := uuid.Parse(value)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
			return
		}
		projectID = &id
	}

	board, err := c.kanbanService.GetBoard(workspaceID, projectID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}

// UpdateTaskStatus
// @Summary Move task to another column
// @Description Accepts a JSON body or form fields with task_id and status_column_id
// @Tags kanban
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param request body UpdateTaskStatusRequest true "Move"
// @Success 200 {object} UpdateTaskStatusResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /kanban/{workspaceId}/update-status [post]
func (c *KanbanController) UpdateTaskStatus(ctx *gin.Context) {
	user, workspaceID, ok := parseWorkspacePath(ctx)
	if !ok {
		return
	}

	var request UpdateTaskStatusRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	response, err := c.kanbanService.MoveTask(workspaceID, &request, user)
	if err != nil {
		abortWithKanbanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// QuickCreateTask
// @Summary Quick create task
// @Description Create a task directly in a board column
// @Tags kanban
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param request body QuickCreateTaskRequest true "Task"
// @Success 200 {object} QuickCreateTaskResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /kanban/{workspaceId}/quick-create [post]
func (c *KanbanController) QuickCreateTask(ctx *gin.Context) {
	user, workspaceID, ok := parseWorkspacePath(ctx)
	if !ok {
		return
	}

	var request QuickCreateTaskRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	task, err := c.kanbanService.QuickCreateTask(workspaceID, &request, user)
	if err != nil {
		abortWithKanbanError(ctx, err)
		return
	}

	sessions.Flash(
		ctx,
		sessions.FlashLevelSuccess,
		fmt.Sprintf("Task '%s' created successfully!", task.Title),
	)

	ctx.JSON(http.StatusOK, QuickCreateTaskResponse{Success: true, Task: task})
}

// ManageColumns
// @Summary Add, rename or delete a status column
// @Description Deleting a column moves its tasks to the first remaining column
// @Tags kanban
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param request body ManageColumnsRequest true "Column action"
// @Success 200 {object} ManageColumnsResponse
// @Failure 400 {object} ManageColumnsResponse
// @Failure 404 {object} ManageColumnsResponse
// @Failure 409 {object} ManageColumnsResponse
// @Router /kanban/{workspaceId}/columns [post]
func (c *KanbanController) ManageColumns(ctx *gin.Context) {
	user, workspaceID, ok := parseWorkspacePath(ctx)
	if !ok {
		return
	}

	var request ManageColumnsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ManageColumnsResponse{Error: "Invalid JSON"})
		return
	}

	if err := c.kanbanService.ManageColumns(workspaceID, &request, user); err != nil {
		abortWithKanbanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ManageColumnsResponse{Success: true})
}

func parseWorkspacePath(ctx *gin.Context) (*users_models.User, uuid.UUID, bool) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, uuid.Nil, false
	}

	workspaceID, err := uuid.Parse(ctx.Param("workspaceId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return nil, uuid.Nil, false
	}

	return user, workspaceID, true
}

// abortWithKanbanError answers board requests in the {success, error} shape
// the board scripts expect.
func abortWithKanbanError(ctx *gin.Context, err error) {
	if sessions.WantsHTML(ctx) {
		sessions.AbortWithError(ctx, err)
		return
	}

	status := apperrors.HTTPStatus(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.GetLogger().Error(
			"Unexpected error while handling kanban request",
			"path", ctx.FullPath(),
			"error", err,
		)
		message = "Internal server error"
	}

	ctx.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}
