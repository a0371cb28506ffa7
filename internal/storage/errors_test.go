package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func Test_IsUniqueViolation(t *testing.T) {
	t.Run("postgres unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("postgres other error", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23503"}
		assert.False(t, IsUniqueViolation(err))
	})

	t.Run("sqlite unique violation", func(t *testing.T) {
		err := errors.New("UNIQUE constraint failed: groups.workspace_id, groups.name")
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(nil))
	})
}

func Test_IsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("boom")))
}
