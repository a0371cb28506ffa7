package projects

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectDeletionListener removes data owned by a project inside the
// transaction that deletes it.
type ProjectDeletionListener interface {
	OnBeforeProjectDeletion(tx *gorm.DB, projectID uuid.UUID) error
}
