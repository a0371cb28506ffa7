package audit_logs

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

// AuditLog is an append-only activity entry. Rows are only removed together
// with their workspace.
type AuditLog struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id;primaryKey"`
	UserID      *uuid.UUID `json:"userId"      gorm:"column:user_id;index"`
	WorkspaceID *uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;index"`
	Message     string     `json:"message"     gorm:"column:message"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func init() {
	storage.RegisterModels(&AuditLog{})
}
