package status_columns

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusColumnRepository struct{}

func (r *StatusColumnRepository) Create(tx *gorm.DB, column *StatusColumn) error {
	if column.ID == uuid.Nil {
		column.ID = uuid.New()
	}

	if column.CreatedAt.IsZero() {
		column.CreatedAt = time.Now().UTC()
	}

	return tx.Create(column).Error
}

func (r *StatusColumnRepository) GetByWorkspace(
	tx *gorm.DB,
	workspaceID uuid.UUID,
) ([]*StatusColumn, error) {
	columns := make([]*StatusColumn, 0)

	if err := tx.
		Where("workspace_id = ?", workspaceID).
		Order("sort_order ASC, created_at ASC").
		Find(&columns).Error; err != nil {
		return nil, err
	}

	return columns, nil
}

// FindByID returns nil when the column does not exist in the workspace.
func (r *StatusColumnRepository) FindByID(
	tx *gorm.DB,
	workspaceID, columnID uuid.UUID,
) (*StatusColumn, error) {
	var column StatusColumn

	if err := tx.
		Where("id = ? AND workspace_id = ?", columnID, workspaceID).
		First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &column, nil
}

func (r *StatusColumnRepository) FindFirst(
	tx *gorm.DB,
	workspaceID uuid.UUID,
	excludeID *uuid.UUID,
) (*StatusColumn, error) {
	var column StatusColumn

	query := tx.Where("workspace_id = ?", workspaceID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	if err := query.Order("sort_order ASC, created_at ASC").First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &column, nil
}

// ExistsByName compares names case-insensitively in Go, so non-ASCII names
// fold the same way on every database backend.
func (r *StatusColumnRepository) ExistsByName(
	tx *gorm.DB,
	workspaceID uuid.UUID,
	name string,
	excludeID *uuid.UUID,
) (bool, error) {
	var names []string

	query := tx.Model(&StatusColumn{}).Where("workspace_id = ?", workspaceID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	if err := query.Pluck("name", &names).Error; err != nil {
		return false, err
	}

	lowered := strings.ToLower(name)
	for _, existing := range names {
		if strings.ToLower(existing) == lowered {
			return true, nil
		}
	}

	return false, nil
}

func (r *StatusColumnRepository) GetMaxOrder(tx *gorm.DB, workspaceID uuid.UUID) (int, error) {
	var maxOrder sql.NullInt64

	if err := tx.Model(&StatusColumn{}).
		Where("workspace_id = ?", workspaceID).
		Select("MAX(sort_order)").
		Row().
		Scan(&maxOrder); err != nil {
		return 0, err
	}

	return int(maxOrder.Int64), nil
}

func (r *StatusColumnRepository) Count(tx *gorm.DB, workspaceID uuid.UUID) (int64, error) {
	var count int64

	if err := tx.Model(&StatusColumn{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *StatusColumnRepository) UpdateName(tx *gorm.DB, columnID uuid.UUID, name string) error {
	return tx.Model(&StatusColumn{}).Where("id = ?", columnID).Update("name", name).Error
}

func (r *StatusColumnRepository) Delete(tx *gorm.DB, columnID uuid.UUID) error {
	return tx.Where("id = ?", columnID).Delete(&StatusColumn{}).Error
}

func (r *StatusColumnRepository) DeleteByWorkspace(tx *gorm.DB, workspaceID uuid.UUID) error {
	return tx.Where("workspace_id = ?", workspaceID).Delete(&StatusColumn{}).Error
}
