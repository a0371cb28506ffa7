package projects

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

const DefaultProjectColor = "#3B82F6"

type Project struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;primaryKey"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;index"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	Color       string    `json:"color"       gorm:"column:color"`
	CreatedBy   uuid.UUID `json:"createdBy"   gorm:"column:created_by"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) Update(request *UpdateProjectRequest) {
	if request.Name != nil {
		p.Name = *request.Name
	}

	if request.Description != nil {
		p.Description = *request.Description
	}

	if request.Color != nil {
		p.Color = *request.Color
	}
}

func init() {
	storage.RegisterModels(&Project{})
}
