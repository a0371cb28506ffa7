package kanban

import (
	"fmt"
	"strings"

	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	"picktask-backend/internal/features/tasks"
	users_models "picktask-backend/internal/features/users/models"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const noColumnName = "None"

type KanbanService struct {
	workspaceService    *workspaces_services.WorkspaceService
	projectService      *projects.ProjectService
	taskService         *tasks.TaskService
	statusColumnService *status_columns.StatusColumnService
	auditLogService     *audit_logs.AuditLogService
}

// GetBoard groups the workspace's tasks by status column. With a project id
// only that project's tasks are shown.
func (s *KanbanService) GetBoard(
	workspaceID uuid.UUID,
	projectID *uuid.UUID,
	user *users_models.User,
) (*BoardResponse, error) {
	workspace, _, err := s.workspaceService.RequireMembership(workspaceID, user)
	if err != nil {
		return nil, err
	}

	var currentProject *projects.Project
	if projectID != nil {
		currentProject, err = s.projectService.RequireProject(workspaceID, *projectID)
		if err != nil {
			return nil, err
		}
	}

	columns, err := s.statusColumnService.GetColumns(workspaceID)
	if err != nil {
		return nil, err
	}

	workspaceProjects, err := s.projectService.GetWorkspaceProjects(workspaceID)
	if err != nil {
		return nil, err
	}

	workspaceTasks, err := s.taskService.GetWorkspaceTasks(
		workspaceID,
		&tasks.TaskFilter{ProjectID: projectID},
	)
	if err != nil {
		return nil, err
	}

	board := &BoardResponse{
		Workspace:      workspace,
		Projects:       workspaceProjects,
		CurrentProject: currentProject,
		Columns:        make([]*BoardColumnDTO, 0, len(columns)),
		UnsortedTasks:  make([]*tasks.TaskDTO, 0),
		HasProjects:    len(workspaceProjects) > 0,
	}

	columnsByID := make(map[uuid.UUID]*BoardColumnDTO, len(columns))
	for _, column := range columns {
		boardColumn := &BoardColumnDTO{Column: column, Tasks: make([]*tasks.TaskDTO, 0)}
		columnsByID[column.ID] = boardColumn
		board.Columns = append(board.Columns, boardColumn)
	}

	for _, task := range workspaceTasks {
		if task.StatusColumnID != nil {
			if boardColumn, ok := columnsByID[*task.StatusColumnID]; ok {
				boardColumn.Tasks = append(boardColumn.Tasks, task)
				continue
			}
		}

		board.UnsortedTasks = append(board.UnsortedTasks, task)
	}

	return board, nil
}

// MoveTask changes the task's column and records one activity entry in the
// same transaction.
func (s *KanbanService) MoveTask(
	workspaceID uuid.UUID,
	request *UpdateTaskStatusRequest,
	user *users_models.User,
) (*UpdateTaskStatusResponse, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(strings.TrimSpace(request.TaskID))
	if err != nil {
		return nil, apperrors.NotFound("Task not found")
	}

	columnID, err := uuid.Parse(strings.TrimSpace(request.StatusColumnID))
	if err != nil {
		return nil, apperrors.Validation("Invalid status column")
	}

	response := &UpdateTaskStatusResponse{Success: true, OldColumn: noColumnName}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		task, err := s.taskService.FindTask(tx, workspaceID, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return apperrors.NotFound("Task not found")
		}

		newColumn, err := s.statusColumnService.FindColumn(tx, workspaceID, columnID)
		if err != nil {
			return err
		}
		if newColumn == nil {
			return apperrors.Validation("Invalid status column")
		}

		if task.StatusColumnID != nil {
			oldColumn, err := s.statusColumnService.FindColumn(tx, workspaceID, *task.StatusColumnID)
			if err != nil {
				return err
			}
			if oldColumn != nil {
				response.OldColumn = oldColumn.Name
			}
		}

		if err := s.taskService.MoveTask(tx, task.ID, newColumn.ID); err != nil {
			return err
		}

		response.TaskTitle = task.Title
		response.NewColumn = newColumn.Name

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("moved task '%s' to '%s'", task.Title, newColumn.Name),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *KanbanService) QuickCreateTask(
	workspaceID uuid.UUID,
	request *QuickCreateTaskRequest,
	user *users_models.User,
) (*tasks.TaskDTO, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(request.Title)
	projectValue := strings.TrimSpace(request.ProjectID)
	columnValue := strings.TrimSpace(request.StatusColumnID)

	if title == "" || projectValue == "" || columnValue == "" {
		return nil, apperrors.Validation("Title, project, and status column are required.")
	}

	invalidSelection := apperrors.Validation("Invalid project or status column selected.")

	projectID, err := uuid.Parse(projectValue)
	if err != nil {
		return nil, invalidSelection
	}

	columnID, err := uuid.Parse(columnValue)
	if err != nil {
		return nil, invalidSelection
	}

	project, err := s.projectService.FindProject(workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	column, err := s.statusColumnService.FindColumn(storage.GetDb(), workspaceID, columnID)
	if err != nil {
		return nil, err
	}

	if project == nil || column == nil {
		return nil, invalidSelection
	}

	return s.taskService.CreateTask(
		workspaceID,
		&tasks.CreateTaskRequest{
			Title:          title,
			ProjectID:      project.ID,
			StatusColumnID: &column.ID,
		},
		user,
	)
}

// ManageColumns applies one add, rename or delete action to the workspace's
// columns. Only members of the workspace may change them.
func (s *KanbanService) ManageColumns(
	workspaceID uuid.UUID,
	request *ManageColumnsRequest,
	user *users_models.User,
) error {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return err
	}

	switch request.Action {
	case ColumnActionAdd:
		return s.addColumn(workspaceID, request.Name, user)
	case ColumnActionRename:
		columnID, err := parseColumnID(request.ColumnID, "Column ID and name are required")
		if err != nil {
			return err
		}

		return s.renameColumn(workspaceID, columnID, request.Name, user)
	case ColumnActionDelete:
		columnID, err := parseColumnID(request.ColumnID, "Column ID is required")
		if err != nil {
			return err
		}

		return s.deleteColumn(workspaceID, columnID, user)
	default:
		return apperrors.Validation("Invalid action")
	}
}

func (s *KanbanService) addColumn(
	workspaceID uuid.UUID,
	name string,
	user *users_models.User,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		column, err := s.statusColumnService.AddColumn(tx, workspaceID, name)
		if err != nil {
			return err
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("added column '%s'", column.Name),
			&user.ID,
			&workspaceID,
		)
	})
}

func (s *KanbanService) renameColumn(
	workspaceID, columnID uuid.UUID,
	name string,
	user *users_models.User,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		previous, err := s.statusColumnService.RenameColumn(tx, workspaceID, columnID, name)
		if err != nil {
			return err
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("renamed column '%s' to '%s'", previous.Name, strings.TrimSpace(name)),
			&user.ID,
			&workspaceID,
		)
	})
}

// deleteColumn moves the column's tasks to the lowest-order remaining column
// and removes the column in one transaction.
func (s *KanbanService) deleteColumn(
	workspaceID, columnID uuid.UUID,
	user *users_models.User,
) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		column, fallback, err := s.statusColumnService.PrepareDeletion(tx, workspaceID, columnID)
		if err != nil {
			return err
		}

		if _, err := s.taskService.ReassignColumn(tx, column.ID, fallback.ID); err != nil {
			return err
		}

		if err := s.statusColumnService.DeleteColumn(tx, column.ID); err != nil {
			return err
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("deleted column '%s', tasks moved to '%s'", column.Name, fallback.Name),
			&user.ID,
			&workspaceID,
		)
	})
}

func parseColumnID(value string, missingMessage string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil, apperrors.Validation(missingMessage)
	}

	columnID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.NotFound("Status column not found")
	}

	return columnID, nil
}
