package tasks

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskDeletionListener removes data attached to tasks inside the transaction
// that deletes them.
type TaskDeletionListener interface {
	OnBeforeTasksDeletion(tx *gorm.DB, taskIDs []uuid.UUID) error
}
