package attachments

import (
	"errors"
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentRepository struct{}

func (r *AttachmentRepository) Create(tx *gorm.DB, attachment *Attachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}

	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now().UTC()
	}

	return tx.Create(attachment).Error
}

// FindByID returns nil when the attachment does not belong to the task.
func (r *AttachmentRepository) FindByID(taskID, attachmentID uuid.UUID) (*Attachment, error) {
	var attachment Attachment

	if err := storage.GetDb().
		Where("id = ? AND task_id = ?", attachmentID, taskID).
		First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &attachment, nil
}

func (r *AttachmentRepository) GetByTask(taskID uuid.UUID) ([]*Attachment, error) {
	attachments := make([]*Attachment, 0)

	if err := storage.GetDb().
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}

	return attachments, nil
}

func (r *AttachmentRepository) GetByTasks(tx *gorm.DB, taskIDs []uuid.UUID) ([]*Attachment, error) {
	attachments := make([]*Attachment, 0)

	if err := tx.Where("task_id IN ?", taskIDs).Find(&attachments).Error; err != nil {
		return nil, err
	}

	return attachments, nil
}

func (r *AttachmentRepository) Delete(tx *gorm.DB, attachmentID uuid.UUID) error {
	return tx.Where("id = ?", attachmentID).Delete(&Attachment{}).Error
}

func (r *AttachmentRepository) DeleteByTasks(tx *gorm.DB, taskIDs []uuid.UUID) error {
	return tx.Where("task_id IN ?", taskIDs).Delete(&Attachment{}).Error
}
