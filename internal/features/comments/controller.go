package comments

import (
	"net/http"

	"picktask-backend/internal/features/sessions"
	"picktask-backend/internal/features/tasks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentController struct {
	commentService *CommentService
}

func (c *CommentController) RegisterRoutes(router *gin.RouterGroup) {
	commentRoutes := router.Group("/task/:workspaceId/:taskId/comments")

	commentRoutes.GET("", c.GetComments)
	commentRoutes.POST("", c.AddComment)
	commentRoutes.DELETE("/:commentId", c.DeleteComment)
}

// AddComment
// @Summary Comment on a task
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 200 {object} Comment
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId}/comments [post]
func (c *CommentController) AddComment(ctx *gin.Context) {
	user, workspaceID, taskID, ok := tasks.ParseTaskPath(ctx)
	if !ok {
		return
	}

	var request AddCommentRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	comment, err := c.commentService.AddComment(workspaceID, taskID, &request, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

// GetComments
// @Summary List task comments
// @Description Comments in chronological order
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} ListCommentsResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId}/comments [get]
func (c *CommentController) GetComments(ctx *gin.Context) {
	user, workspaceID, taskID, ok := tasks.ParseTaskPath(ctx)
	if !ok {
		return
	}

	response, err := c.commentService.GetComments(workspaceID, taskID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteComment
// @Summary Delete comment
// @Description Allowed for the author and workspace admins
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId}/comments/{commentId} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	user, workspaceID, taskID, ok := tasks.ParseTaskPath(ctx)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(ctx.Param("commentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := c.commentService.DeleteComment(workspaceID, taskID, commentID, user); err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
