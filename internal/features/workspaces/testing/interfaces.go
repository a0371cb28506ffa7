package workspaces_testing

import "github.com/gin-gonic/gin"

// ControllerInterface is any feature controller that mounts its routes on the
// protected API group.
type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}
