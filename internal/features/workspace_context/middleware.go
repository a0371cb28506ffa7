package workspace_context

import (
	"context"

	"picktask-backend/internal/features/sessions"
	users_middleware "picktask-backend/internal/features/users/middleware"
	users_models "picktask-backend/internal/features/users/models"
	"picktask-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextResolvedKey = "workspaceContext"

// ContextMiddleware resolves the current workspace and project for
// authenticated requests. Failures are logged and the request continues with
// an empty context.
func ContextMiddleware(resolver *ContextResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := users_middleware.GetUserFromContext(ctx)
		if !ok {
			ctx.Next()
			return
		}

		ctx.Set(contextResolvedKey, resolver.ResolveRequest(ctx, user))
		ctx.Next()
	}
}

// GetResolvedContext returns the context stored by ContextMiddleware.
func GetResolvedContext(ctx *gin.Context) (*ResolvedContext, bool) {
	value, exists := ctx.Get(contextResolvedKey)
	if !exists {
		return nil, false
	}

	resolved, ok := value.(*ResolvedContext)
	return resolved, ok
}

// ResolveRequest runs the resolver with the request's path parameters and
// session values, then persists the resulting session changes.
func (r *ContextResolver) ResolveRequest(ctx *gin.Context, user *users_models.User) *ResolvedContext {
	log := logger.GetLogger()
	requestCtx := ctx.Request.Context()

	input := &ResolveInput{
		PathWorkspaceID: parseParam(ctx, "workspaceId"),
		PathProjectID:   parseParam(ctx, "projectId"),
	}

	sessionID, hasSession := sessions.GetSessionIDFromContext(ctx)
	store := r.sessionStore

	if hasSession {
		state, err := store.Get(requestCtx, sessionID)
		if err != nil {
			log.Error("Failed to read session for context resolution", "error", err)
		} else {
			input.SessionWorkspaceID = state.CurrentWorkspaceID
			input.SessionProjectID = state.CurrentProjectID
		}
	}

	resolved, err := r.Resolve(user, input)
	if err != nil {
		log.Error(
			"Failed to resolve workspace context",
			"userId", user.ID,
			"error", err,
		)
		return emptyContext()
	}

	if hasSession && !resolved.SessionChanges.IsEmpty() {
		if err := applySessionChanges(requestCtx, store, sessionID, &resolved.SessionChanges); err != nil {
			log.Error("Failed to persist workspace context", "error", err)
		}
	}

	return resolved
}

func applySessionChanges(
	ctx context.Context,
	store *sessions.SessionStore,
	sessionID string,
	changes *SessionChanges,
) error {
	for key, value := range changes.Set {
		if err := store.Set(ctx, sessionID, key, value); err != nil {
			return err
		}
	}

	return store.Delete(ctx, sessionID, changes.Delete...)
}

func parseParam(ctx *gin.Context, name string) *uuid.UUID {
	value := ctx.Param(name)
	if value == "" {
		return nil
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}

	return &id
}
