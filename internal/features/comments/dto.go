package comments

import (
	"time"

	"github.com/google/uuid"
)

type AddCommentRequest struct {
	Content string `json:"content" form:"content" binding:"required,max=5000"`
}

type CommentDTO struct {
	ID             uuid.UUID `json:"id"             gorm:"column:id"`
	TaskID         uuid.UUID `json:"taskId"         gorm:"column:task_id"`
	AuthorID       uuid.UUID `json:"authorId"       gorm:"column:author_id"`
	AuthorUsername string    `json:"authorUsername" gorm:"column:author_username"`
	Content        string    `json:"content"        gorm:"column:content"`
	CreatedAt      time.Time `json:"createdAt"      gorm:"column:created_at"`
}

type ListCommentsResponse struct {
	Comments []*CommentDTO `json:"comments"`
}
