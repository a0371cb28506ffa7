package status_columns

import (
	"fmt"
	"strings"

	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusColumnService struct {
	statusColumnRepository *StatusColumnRepository
}

// EnsureDefaultColumns creates the default pipeline for a workspace that has
// no columns yet.
func (s *StatusColumnService) EnsureDefaultColumns(tx *gorm.DB, workspaceID uuid.UUID) error {
	count, err := s.statusColumnRepository.Count(tx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to count status columns: %w", err)
	}

	if count > 0 {
		return nil
	}

	for order, name := range DefaultColumnNames {
		column := &StatusColumn{
			WorkspaceID: workspaceID,
			Name:        name,
			Order:       order,
		}

		if err := s.statusColumnRepository.Create(tx, column); err != nil {
			return fmt.Errorf("failed to create default status column: %w", err)
		}
	}

	return nil
}

func (s *StatusColumnService) GetColumns(workspaceID uuid.UUID) ([]*StatusColumn, error) {
	var columns []*StatusColumn

	err := storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.EnsureDefaultColumns(tx, workspaceID); err != nil {
			return err
		}

		var err error
		columns, err = s.statusColumnRepository.GetByWorkspace(tx, workspaceID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get status columns: %w", err)
	}

	return columns, nil
}

// FindColumn returns nil when the column is not part of the workspace.
func (s *StatusColumnService) FindColumn(
	tx *gorm.DB,
	workspaceID, columnID uuid.UUID,
) (*StatusColumn, error) {
	column, err := s.statusColumnRepository.FindByID(tx, workspaceID, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get status column: %w", err)
	}

	return column, nil
}

// GetDefaultColumn returns the lowest-order column of the workspace.
func (s *StatusColumnService) GetDefaultColumn(
	tx *gorm.DB,
	workspaceID uuid.UUID,
) (*StatusColumn, error) {
	if err := s.EnsureDefaultColumns(tx, workspaceID); err != nil {
		return nil, err
	}

	column, err := s.statusColumnRepository.FindFirst(tx, workspaceID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get default status column: %w", err)
	}

	return column, nil
}

func (s *StatusColumnService) AddColumn(
	tx *gorm.DB,
	workspaceID uuid.UUID,
	name string,
) (*StatusColumn, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("Name is required")
	}

	if err := s.checkNameIsFree(tx, workspaceID, name, nil); err != nil {
		return nil, err
	}

	maxOrder, err := s.statusColumnRepository.GetMaxOrder(tx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get max column order: %w", err)
	}

	column := &StatusColumn{
		WorkspaceID: workspaceID,
		Name:        name,
		Order:       maxOrder + 1,
	}

	if err := s.statusColumnRepository.Create(tx, column); err != nil {
		return nil, fmt.Errorf("failed to create status column: %w", err)
	}

	return column, nil
}

// RenameColumn returns the column as it was before the rename.
func (s *StatusColumnService) RenameColumn(
	tx *gorm.DB,
	workspaceID, columnID uuid.UUID,
	name string,
) (*StatusColumn, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("Column ID and name are required")
	}

	column, err := s.FindColumn(tx, workspaceID, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, apperrors.NotFound("Status column not found")
	}

	if err := s.checkNameIsFree(tx, workspaceID, name, &column.ID); err != nil {
		return nil, err
	}

	if err := s.statusColumnRepository.UpdateName(tx, column.ID, name); err != nil {
		return nil, fmt.Errorf("failed to rename status column: %w", err)
	}

	return column, nil
}

// PrepareDeletion finds the column to delete and the column its tasks move to.
func (s *StatusColumnService) PrepareDeletion(
	tx *gorm.DB,
	workspaceID, columnID uuid.UUID,
) (*StatusColumn, *StatusColumn, error) {
	column, err := s.FindColumn(tx, workspaceID, columnID)
	if err != nil {
		return nil, nil, err
	}
	if column == nil {
		return nil, nil, apperrors.NotFound("Status column not found")
	}

	fallback, err := s.statusColumnRepository.FindFirst(tx, workspaceID, &column.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get fallback column: %w", err)
	}
	if fallback == nil {
		return nil, nil, apperrors.InvariantViolation("Cannot delete the last column")
	}

	return column, fallback, nil
}

func (s *StatusColumnService) DeleteColumn(tx *gorm.DB, columnID uuid.UUID) error {
	if err := s.statusColumnRepository.Delete(tx, columnID); err != nil {
		return fmt.Errorf("failed to delete status column: %w", err)
	}

	return nil
}

func (s *StatusColumnService) OnBeforeWorkspaceDeletion(tx *gorm.DB, workspaceID uuid.UUID) error {
	if err := s.statusColumnRepository.DeleteByWorkspace(tx, workspaceID); err != nil {
		return fmt.Errorf("failed to delete status columns: %w", err)
	}

	return nil
}

func (s *StatusColumnService) checkNameIsFree(
	tx *gorm.DB,
	workspaceID uuid.UUID,
	name string,
	excludeID *uuid.UUID,
) error {
	exists, err := s.statusColumnRepository.ExistsByName(tx, workspaceID, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check column name: %w", err)
	}

	if exists {
		return apperrors.Validation("A column with this name already exists")
	}

	return nil
}
