package status_columns

import (
	"testing"

	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_GetColumns_CreatesDefaultPipelineOnce(t *testing.T) {
	service := GetStatusColumnService()
	workspaceID := uuid.New()

	columns, err := service.GetColumns(workspaceID)
	require.NoError(t, err)
	assert.Equal(t, DefaultColumnNames, extractNames(columns))

	columns, err = service.GetColumns(workspaceID)
	require.NoError(t, err)
	assert.Len(t, columns, len(DefaultColumnNames))
}

func Test_AddColumn_AppendsAfterHighestOrder(t *testing.T) {
	service := GetStatusColumnService()
	workspaceID := uuid.New()

	_, err := service.GetColumns(workspaceID)
	require.NoError(t, err)

	column, err := service.AddColumn(storage.GetDb(), workspaceID, "  Blocked ")
	require.NoError(t, err)
	assert.Equal(t, "Blocked", column.Name)
	assert.Equal(t, len(DefaultColumnNames), column.Order)

	columns, err := service.GetColumns(workspaceID)
	require.NoError(t, err)
	assert.Equal(t, "Blocked", columns[len(columns)-1].Name)
}

func Test_AddColumn_RejectsEmptyAndDuplicateNames(t *testing.T) {
	service := GetStatusColumnService()
	workspaceID := uuid.New()

	_, err := service.GetColumns(workspaceID)
	require.NoError(t, err)

	_, err = service.AddColumn(storage.GetDb(), workspaceID, "   ")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = service.AddColumn(storage.GetDb(), workspaceID, "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// names are unique per workspace only
	_, err = service.AddColumn(storage.GetDb(), uuid.New(), "Done")
	assert.NoError(t, err)
}

func Test_AddColumn_DuplicateCheckFoldsNonASCIICase(t *testing.T) {
	service := GetStatusColumnService()
	workspaceID := uuid.New()

	_, err := service.AddColumn(storage.GetDb(), workspaceID, "Éxito")
	require.NoError(t, err)

	_, err = service.AddColumn(storage.GetDb(), workspaceID, "éXITO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func Test_RenameColumn_KeepsPreviousNameForCaller(t *testing.T) {
	service := GetStatusColumnService()
	workspaceID := uuid.New()

	columns, err := service.GetColumns(workspaceID)
	require.NoError(t, err)

	previous, err := service.RenameColumn(storage.GetDb(), workspaceID, columns[1].ID, "Doing")
	require.NoError(t, err)
	assert.Equal(t, "In Progress", previous.Name)

	_, err = service.RenameColumn(storage.GetDb(), workspaceID, columns[1].ID, "Review")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = service.RenameColumn(storage.GetDb(), uuid.New(), columns[1].ID, "Other")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func Test_PrepareDeletion_PicksLowestRemainingColumnAndProtectsLastOne(t *testing.T) {
	service := GetStatusColumnService()
	workspaceID := uuid.New()

	columns, err := service.GetColumns(workspaceID)
	require.NoError(t, err)

	column, fallback, err := service.PrepareDeletion(storage.GetDb(), workspaceID, columns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, columns[0].ID, column.ID)
	assert.Equal(t, columns[1].ID, fallback.ID)

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		for _, c := range columns[1:] {
			if err := service.DeleteColumn(tx, c.ID); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	_, _, err = service.PrepareDeletion(storage.GetDb(), workspaceID, columns[0].ID)
	assert.True(t, apperrors.Is(err, apperrors.KindInvariantViolation))
}

func Test_OnBeforeWorkspaceDeletion_RemovesOnlyThatWorkspace(t *testing.T) {
	service := GetStatusColumnService()
	deletedID, keptID := uuid.New(), uuid.New()

	_, err := service.GetColumns(deletedID)
	require.NoError(t, err)
	kept, err := service.GetColumns(keptID)
	require.NoError(t, err)

	require.NoError(t, service.OnBeforeWorkspaceDeletion(storage.GetDb(), deletedID))

	count, err := statusColumnRepository.Count(storage.GetDb(), deletedID)
	require.NoError(t, err)
	assert.Zero(t, count)

	remaining, err := service.GetColumns(keptID)
	require.NoError(t, err)
	assert.Equal(t, extractNames(kept), extractNames(remaining))
}

func extractNames(columns []*StatusColumn) []string {
	names := make([]string, len(columns))
	for i, column := range columns {
		names[i] = column.Name
	}

	return names
}
