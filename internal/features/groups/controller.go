package groups

import (
	"net/http"

	"picktask-backend/internal/features/sessions"
	users_middleware "picktask-backend/internal/features/users/middleware"
	users_models "picktask-backend/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GroupController struct {
	groupService *GroupService
}

func (c *GroupController) RegisterRoutes(router *gin.RouterGroup) {
	groupRoutes := router.Group("/team/:workspaceId/groups")

	groupRoutes.GET("", c.GetGroups)
	groupRoutes.POST("", c.CreateGroup)
	groupRoutes.GET("/:groupId", c.GetGroup)
	groupRoutes.POST("/:groupId", c.AddGroupMember)
	groupRoutes.PUT("/:groupId", c.UpdateGroup)
	groupRoutes.DELETE("/:groupId", c.DeleteGroup)
	groupRoutes.DELETE("/:groupId/members/:groupMembershipId", c.RemoveGroupMember)
}

// GetGroups
// @Summary List groups
// @Description List the workspace's groups with their member counts
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} ListGroupsResponse
// @Failure 403 {object} map[string]string
// @Router /team/{workspaceId}/groups [get]
func (c *GroupController) GetGroups(ctx *gin.Context) {
	user, workspaceID, ok := parseWorkspacePath(ctx)
	if !ok {
		return
	}

	response, err := c.groupService.GetGroups(workspaceID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateGroup
// @Summary Create group
// @Description Only workspace admins can create groups
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param request body CreateGroupRequest true "Group data"
// @Success 200 {object} Group
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /team/{workspaceId}/groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	user, workspaceID, ok := parseWorkspacePath(ctx)
	if !ok {
		return
	}

	var request CreateGroupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	group, err := c.groupService.CreateGroup(workspaceID, &request, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, group)
}

// GetGroup
// @Summary Get group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param groupId path string true "Group ID"
// @Success 200 {object} GroupDetailsResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /team/{workspaceId}/groups/{groupId} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	user, workspaceID, groupID, ok := parseGroupPath(ctx)
	if !ok {
		return
	}

	response, err := c.groupService.GetGroup(workspaceID, groupID, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddGroupMember
// @Summary Add group member
// @Description The user must already be a member of the workspace
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param groupId path string true "Group ID"
// @Param request body AddGroupMemberRequest true "Member"
// @Success 200 {object} GroupMembership
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /team/{workspaceId}/groups/{groupId} [post]
func (c *GroupController) AddGroupMember(ctx *gin.Context) {
	user, workspaceID, groupID, ok := parseGroupPath(ctx)
	if !ok {
		return
	}

	var request AddGroupMemberRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	membership, err := c.groupService.AddMember(workspaceID, groupID, &request, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, membership)
}

// UpdateGroup
// @Summary Update group
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param groupId path string true "Group ID"
// @Param request body UpdateGroupRequest true "Group fields to change"
// @Success 200 {object} Group
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /team/{workspaceId}/groups/{groupId} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	user, workspaceID, groupID, ok := parseGroupPath(ctx)
	if !ok {
		return
	}

	var request UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	group, err := c.groupService.UpdateGroup(workspaceID, groupID, &request, user)
	if err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, group)
}

// DeleteGroup
// @Summary Delete group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param groupId path string true "Group ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /team/{workspaceId}/groups/{groupId} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	user, workspaceID, groupID, ok := parseGroupPath(ctx)
	if !ok {
		return
	}

	if err := c.groupService.DeleteGroup(workspaceID, groupID, user); err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
}

// RemoveGroupMember
// @Summary Remove group member
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param groupId path string true "Group ID"
// @Param groupMembershipId path string true "Group membership ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /team/{workspaceId}/groups/{groupId}/members/{groupMembershipId} [delete]
func (c *GroupController) RemoveGroupMember(ctx *gin.Context) {
	user, workspaceID, groupID, ok := parseGroupPath(ctx)
	if !ok {
		return
	}

	groupMembershipID, err := uuid.Parse(ctx.Param("groupMembershipId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group membership ID"})
		return
	}

	if err := c.groupService.RemoveMember(workspaceID, groupID, groupMembershipID, user); err != nil {
		sessions.AbortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed from group"})
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

func parseGroupPath(ctx *gin.Context) (*users_models.User, uuid.UUID, uuid.UUID, bool) {
	user, workspaceID, ok := parseWorkspacePath(ctx)
	if !ok {
		return nil, uuid.Nil, uuid.Nil, false
	}

	groupID, err := uuid.Parse(ctx.Param("groupId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return nil, uuid.Nil, uuid.Nil, false
	}

	return user, workspaceID, groupID, true
}
