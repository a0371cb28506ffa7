package tasks

import (
	"net/http"

	"picktask-backend/internal/features/sessions"
	users_middleware "picktask-backend/internal/features/users/middleware"
	users_models "picktask-backend/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *TaskService
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	taskRoutes := router.Group("/task/:workspaceId")

	taskRoutes.POST("/create", c.CreateTask)
	taskRoutes.GET("/:taskId", c.GetTask)
	taskRoutes.PUT("/:taskId", c.UpdateTask)
	taskRoutes.DELETE("/:taskId", c.DeleteTask)
}

// CreateTask
// @Summary Create a task
// @Description Create a task in a project of the workspace. The column defaults to the first one.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param request body CreateTaskRequest true "Task data"
// @Success 200 {object} TaskDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/create [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
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

	var request CreateTaskRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.CreateTask(workspaceID, &request, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// GetTask
// @Summary Get task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} TaskDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	user, workspaceID, taskID, ok := ParseTaskPath(ctx)
	if !ok {
		return
	}

	task, err := c.taskService.GetTask(workspaceID, taskID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// UpdateTask
// @Summary Update task
// @Description Update the provided task fields
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Param request body UpdateTaskRequest true "Task data"
// @Success 200 {object} TaskDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, workspaceID, taskID, ok := ParseTaskPath(ctx)
	if !ok {
		return
	}

	var request UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.UpdateTask(workspaceID, taskID, &request, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// DeleteTask
// @Summary Delete task
// @Description Delete the task with its comments and attachments. Allowed for the creator and admins.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	user, workspaceID, taskID, ok := ParseTaskPath(ctx)
	if !ok {
		return
	}

	if err := c.taskService.DeleteTask(workspaceID, taskID, user); err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ParseTaskPath reads the authenticated user and the workspace and task ids
// shared by every /task/:workspaceId/:taskId route. It writes the error
// response itself.
func ParseTaskPath(ctx *gin.Context) (*users_models.User, uuid.UUID, uuid.UUID, bool) {
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

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return nil, uuid.Nil, uuid.Nil, false
	}

	return user, workspaceID, taskID, true
}
