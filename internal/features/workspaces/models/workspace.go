package workspaces_models

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

type Workspace struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	Name      string    `json:"name"      gorm:"column:name"`
	CreatedBy uuid.UUID `json:"createdBy" gorm:"column:created_by"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

func (w *Workspace) UpdateFromDTO(name string) {
	w.Name = name
}

func init() {
	storage.RegisterModels(&Workspace{}, &WorkspaceMembership{}, &Invitation{})
}
