package users_interfaces

import (
	users_models "picktask-backend/internal/features/users/models"

	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID)
}

// UserRegistrationListener is notified after a new account is stored.
type UserRegistrationListener interface {
	OnUserRegistered(user *users_models.User) error
}
