package audit_logs_controllers

import (
	"net/http"
	"strconv"

	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/sessions"
	workspaces_middleware "picktask-backend/internal/features/workspaces/middleware"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/util/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditLogController struct {
	auditLogService  *audit_logs.AuditLogService
	workspaceService *workspaces_services.WorkspaceService
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	activityRoutes := router.Group("/activity/:workspaceId")
	activityRoutes.Use(workspaces_middleware.RequireWorkspaceMember(c.workspaceService, "workspaceId"))

	activityRoutes.GET("", c.GetWorkspaceActivity)
	activityRoutes.GET("/summary", c.GetActivitySummary)
	activityRoutes.GET("/users/:userId", c.GetUserActivity)
}

// GetWorkspaceActivity
// @Summary Workspace activity log
// @Description Newest first, filtered by username substring, action substring and inclusive date range
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param user query string false "Username substring"
// @Param action query string false "Action substring"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /activity/{workspaceId} [get]
func (c *AuditLogController) GetWorkspaceActivity(ctx *gin.Context) {
	workspace, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Workspace is not resolved"})
		return
	}

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.auditLogService.GetWorkspaceAuditLogs(workspace.ID, request)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetActivitySummary
// @Summary Workspace activity summary
// @Description Totals for the last 30 days, most active users, most common actions and the daily trend of the last week
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} audit_logs.ActivitySummaryDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /activity/{workspaceId}/summary [get]
func (c *AuditLogController) GetActivitySummary(ctx *gin.Context) {
	workspace, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Workspace is not resolved"})
		return
	}

	summary, err := c.auditLogService.GetWorkspaceActivitySummary(workspace.ID)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// GetUserActivity
// @Summary Activity of one member
// @Description Entries written by a member of the workspace, 20 per page
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param userId path string true "User ID"
// @Param page query int false "Page number"
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /activity/{workspaceId}/users/{userId} [get]
func (c *AuditLogController) GetUserActivity(ctx *gin.Context) {
	workspace, ok := workspaces_middleware.GetWorkspaceFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Workspace is not resolved"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	page := 1
	if rawPage := ctx.Query("page"); rawPage != "" {
		parsedPage, err := strconv.Atoi(rawPage)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
			return
		}
		page = parsedPage
	}

	isMember, err := c.workspaceService.IsMember(workspace.ID, targetUserID)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}
	if !isMember {
		sessions.AbortWithError(ctx, apperrors.NotFound("User is not a member of this workspace"))
		return
	}

	response, err := c.auditLogService.GetUserActivity(workspace.ID, targetUserID, page)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
