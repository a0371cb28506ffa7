package status_columns

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

var DefaultColumnNames = []string{"To Do", "In Progress", "Review", "Done"}

// StatusColumn is a named stage of a workspace's kanban pipeline.
type StatusColumn struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;primaryKey"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;index"`
	Name        string    `json:"name"        gorm:"column:name"`
	Order       int       `json:"order"       gorm:"column:sort_order"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (StatusColumn) TableName() string {
	return "status_columns"
}

func init() {
	storage.RegisterModels(&StatusColumn{})
}
