package comments

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	TaskID    uuid.UUID `json:"taskId"    gorm:"column:task_id;index"`
	AuthorID  uuid.UUID `json:"authorId"  gorm:"column:author_id"`
	Content   string    `json:"content"   gorm:"column:content"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

func init() {
	storage.RegisterModels(&Comment{})
}
