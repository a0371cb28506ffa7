package sessions

import (
	"net/http"
	"strings"

	"picktask-backend/internal/util/apperrors"
	"picktask-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
)

const (
	DashboardPath = "/api/v1/workspace/dashboard"

	contextSessionIDKey = "sessionId"
)

func SetSessionIDInContext(ctx *gin.Context, sessionID string) {
	ctx.Set(contextSessionIDKey, sessionID)
}

func GetSessionIDFromContext(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(contextSessionIDKey)
	if !exists {
		return "", false
	}

	sessionID, ok := value.(string)
	return sessionID, ok && sessionID != ""
}

// AbortWithError converts a service error into the response. Browser
// navigation gets a redirect to the dashboard with a flash message, API
// clients get a JSON error with the mapped status.
func AbortWithError(ctx *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.GetLogger().Error(
			"Unexpected error while handling request",
			"path", ctx.FullPath(),
			"error", err,
		)
		message = "Internal server error"
	}

	if WantsHTML(ctx) && status != http.StatusInternalServerError {
		if sessionID, ok := GetSessionIDFromContext(ctx); ok {
			if err := GetSessionStore().PushFlash(
				ctx.Request.Context(),
				sessionID,
				FlashLevelError,
				message,
			); err != nil {
				logger.GetLogger().Warn("Failed to store flash message", "error", err)
			}
		}

		ctx.Redirect(http.StatusFound, DashboardPath)
		ctx.Abort()
		return
	}

	ctx.AbortWithStatusJSON(status, gin.H{"error": message})
}

// Flash stores a message shown on the next dashboard load. Failures are only
// logged since flash messages are cosmetic.
func Flash(ctx *gin.Context, level FlashLevel, message string) {
	sessionID, ok := GetSessionIDFromContext(ctx)
	if !ok {
		return
	}

	if err := GetSessionStore().PushFlash(ctx.Request.Context(), sessionID, level, message); err != nil {
		logger.GetLogger().Warn("Failed to store flash message", "error", err)
	}
}

func WantsHTML(ctx *gin.Context) bool {
	return strings.Contains(ctx.GetHeader("Accept"), "text/html")
}
