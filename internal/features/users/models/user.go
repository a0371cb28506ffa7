package users_models

import (
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID `json:"id"                   gorm:"column:id;primaryKey"`
	Username             string    `json:"username"             gorm:"column:username;uniqueIndex"`
	Email                string    `json:"email"                gorm:"column:email;uniqueIndex"`
	Name                 string    `json:"name"                 gorm:"column:name"`
	IsActive             bool      `json:"isActive"             gorm:"column:is_active"`
	HashedPassword       *string   `json:"-"                    gorm:"column:hashed_password"`
	PasswordCreationTime time.Time `json:"-"                    gorm:"column:password_creation_time"`
	CreatedAt            time.Time `json:"createdAt"            gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}

// DisplayName falls back to the handle when no name was given.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}

	return u.Username
}

func init() {
	storage.RegisterModels(&User{})
}
