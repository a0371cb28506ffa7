package attachments

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

type Attachment struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;primaryKey"`
	TaskID      uuid.UUID `json:"taskId"      gorm:"column:task_id;index"`
	UploadedBy  uuid.UUID `json:"uploadedBy"  gorm:"column:uploaded_by"`
	FileName    string    `json:"fileName"    gorm:"column:file_name"`
	ContentType string    `json:"contentType" gorm:"column:content_type"`
	Size        int64     `json:"size"        gorm:"column:size"`
	ObjectKey   string    `json:"-"           gorm:"column:object_key"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}

func init() {
	storage.RegisterModels(&Attachment{})
}
