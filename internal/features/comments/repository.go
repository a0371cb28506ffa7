package comments

import (
	"errors"
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository struct{}

func (r *CommentRepository) Create(tx *gorm.DB, comment *Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	return tx.Create(comment).Error
}

// FindByID returns nil when the comment does not belong to the task.
func (r *CommentRepository) FindByID(taskID, commentID uuid.UUID) (*Comment, error) {
	var comment Comment

	if err := storage.GetDb().
		Where("id = ? AND task_id = ?", commentID, taskID).
		First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &comment, nil
}

func (r *CommentRepository) GetByTask(taskID uuid.UUID) ([]*CommentDTO, error) {
	comments := make([]*CommentDTO, 0)

	if err := storage.GetDb().
		Table("comments c").
		Select(`
			c.id,
			c.task_id,
			c.author_id,
			u.username AS author_username,
			c.content,
			c.created_at
		`).
		Joins("LEFT JOIN users u ON u.id = c.author_id").
		Where("c.task_id = ?", taskID).
		Order("c.created_at ASC").
		Scan(&comments).Error; err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *CommentRepository) Delete(tx *gorm.DB, commentID uuid.UUID) error {
	return tx.Where("id = ?", commentID).Delete(&Comment{}).Error
}

func (r *CommentRepository) DeleteByTasks(tx *gorm.DB, taskIDs []uuid.UUID) error {
	return tx.Where("task_id IN ?", taskIDs).Delete(&Comment{}).Error
}
