package users_middleware

import (
	"net/http"
	"strings"

	"picktask-backend/internal/features/sessions"
	users_models "picktask-backend/internal/features/users/models"
	users_services "picktask-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "user"

// AuthMiddleware resolves the bearer token into the current user and the
// session the token belongs to.
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "Authorization header is required"},
			)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			ctx.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "Authorization token is required"},
			)
			return
		}

		user, sessionID, err := userService.GetUserFromToken(ctx.Request.Context(), token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		ctx.Set(contextUserKey, user)
		sessions.SetSessionIDInContext(ctx, sessionID)

		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(contextUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)
	return user, ok
}
