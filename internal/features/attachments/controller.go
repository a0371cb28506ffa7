package attachments

import (
	"fmt"
	"net/http"

	"picktask-backend/internal/features/sessions"
	"picktask-backend/internal/features/tasks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttachmentController struct {
	attachmentService *AttachmentService
}

func (c *AttachmentController) RegisterRoutes(router *gin.RouterGroup) {
	attachmentRoutes := router.Group("/task/:workspaceId/:taskId/attachments")

	attachmentRoutes.GET("", c.GetAttachments)
	attachmentRoutes.POST("", c.UploadAttachment)
	attachmentRoutes.GET("/:attachmentId", c.DownloadAttachment)
	attachmentRoutes.DELETE("/:attachmentId", c.DeleteAttachment)
}

// UploadAttachment
// @Summary Upload attachment
// @Description Attach a file to the task
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Param file formData file true "File"
// @Success 200 {object} Attachment
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId}/attachments [post]
func (c *AttachmentController) UploadAttachment(ctx *gin.Context) {
	user, workspaceID, taskID, ok := tasks.ParseTaskPath(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	attachment, err := c.attachmentService.UploadAttachment(
		ctx.Request.Context(),
		workspaceID,
		taskID,
		&UploadedFile{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Content:     file,
		},
		user,
	)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, attachment)
}

// GetAttachments
// @Summary List attachments
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} ListAttachmentsResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId}/attachments [get]
func (c *AttachmentController) GetAttachments(ctx *gin.Context) {
	user, workspaceID, taskID, ok := tasks.ParseTaskPath(ctx)
	if !ok {
		return
	}

	response, err := c.attachmentService.GetAttachments(workspaceID, taskID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DownloadAttachment
// @Summary Download attachment
// @Tags attachments
// @Produce octet-stream
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {file} file
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId}/attachments/{attachmentId} [get]
func (c *AttachmentController) DownloadAttachment(ctx *gin.Context) {
	user, workspaceID, taskID, ok := tasks.ParseTaskPath(ctx)
	if !ok {
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	attachment, content, err := c.attachmentService.OpenAttachment(
		ctx.Request.Context(),
		workspaceID,
		taskID,
		attachmentID,
		user,
	)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}
	defer func() {
		_ = content.Close()
	}()

	ctx.DataFromReader(
		http.StatusOK,
		attachment.Size,
		attachment.ContentType,
		content,
		map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", attachment.FileName),
		},
	)
}

// DeleteAttachment
// @Summary Delete attachment
// @Description Allowed for the uploader and workspace admins
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /task/{workspaceId}/{taskId}/attachments/{attachmentId} [delete]
func (c *AttachmentController) DeleteAttachment(ctx *gin.Context) {
	user, workspaceID, taskID, ok := tasks.ParseTaskPath(ctx)
	if !ok {
		return
	}

	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	if err := c.attachmentService.DeleteAttachment(
		ctx.Request.Context(),
		workspaceID,
		taskID,
		attachmentID,
		user,
	); err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
