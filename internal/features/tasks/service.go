package tasks

import (
	"fmt"
	"strings"
	"time"

	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/projects"
	"picktask-backend/internal/features/status_columns"
	users_models "picktask-backend/internal/features/users/models"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct {
	taskRepository        *TaskRepository
	workspaceService      *workspaces_services.WorkspaceService
	projectService        *projects.ProjectService
	statusColumnService   *status_columns.StatusColumnService
	auditLogService       *audit_logs.AuditLogService
	taskDeletionListeners []TaskDeletionListener
}

func (s *TaskService) AddTaskDeletionListener(listener TaskDeletionListener) {
	for _, existing := range s.taskDeletionListeners {
		if existing == listener {
			return
		}
	}

	s.taskDeletionListeners = append(s.taskDeletionListeners, listener)
}

// CreateTask stores the task in the requested column, or in the workspace's
// lowest-order column when none is given.
func (s *TaskService) CreateTask(
	workspaceID uuid.UUID,
	request *CreateTaskRequest,
	user *users_models.User,
) (*TaskDTO, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		return nil, apperrors.Validation("Title is required")
	}

	priority := request.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, apperrors.Validation("Invalid priority")
	}

	project, err := s.projectService.RequireProject(workspaceID, request.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAssignee(workspaceID, request.AssigneeID); err != nil {
		return nil, err
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		return nil, err
	}

	task := &Task{
		ProjectID:   project.ID,
		Title:       title,
		Description: strings.TrimSpace(request.Description),
		Priority:    priority,
		AssigneeID:  request.AssigneeID,
		DueDate:     dueDate,
		CreatedBy:   user.ID,
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		column, err := s.resolveColumn(tx, workspaceID, request.StatusColumnID)
		if err != nil {
			return err
		}
		task.StatusColumnID = &column.ID

		if err := s.taskRepository.Create(tx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("created task '%s' in '%s' column", task.Title, column.Name),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return s.getTaskDetails(workspaceID, task.ID)
}

func (s *TaskService) GetTask(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) (*TaskDTO, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	return s.getTaskDetails(workspaceID, taskID)
}

func (s *TaskService) UpdateTask(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	request *UpdateTaskRequest,
	user *users_models.User,
) (*TaskDTO, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	task, err := s.RequireTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		task.Title = strings.TrimSpace(*request.Title)
		if task.Title == "" {
			return nil, apperrors.Validation("Title is required")
		}
	}

	if request.Description != nil {
		task.Description = strings.TrimSpace(*request.Description)
	}

	if request.Priority != nil {
		if !request.Priority.IsValid() {
			return nil, apperrors.Validation("Invalid priority")
		}
		task.Priority = *request.Priority
	}

	if request.ProjectID != nil {
		project, err := s.projectService.RequireProject(workspaceID, *request.ProjectID)
		if err != nil {
			return nil, err
		}
		task.ProjectID = project.ID
	}

	if request.AssigneeID != nil {
		assigneeID, err := parseOptionalID(*request.AssigneeID, "Invalid assignee")
		if err != nil {
			return nil, err
		}

		if err := s.checkAssignee(workspaceID, assigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = assigneeID
	}

	if request.DueDate != nil {
		dueDate, err := parseDueDate(*request.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if request.StatusColumnID != nil {
			column, err := s.resolveColumn(tx, workspaceID, request.StatusColumnID)
			if err != nil {
				return err
			}
			task.StatusColumnID = &column.ID
		}

		if err := s.taskRepository.Save(tx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("updated task '%s'", task.Title),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return s.getTaskDetails(workspaceID, task.ID)
}

// DeleteTask is allowed for the task's creator and workspace admins.
func (s *TaskService) DeleteTask(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) error {
	_, membership, err := s.workspaceService.RequireMembership(workspaceID, user)
	if err != nil {
		return err
	}

	task, err := s.RequireTask(workspaceID, taskID)
	if err != nil {
		return err
	}

	if !canDeleteTask(task, membership, user) {
		return apperrors.AccessDenied("Only the task creator or an admin can delete this task")
	}

	return storage.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteTasks(tx, []uuid.UUID{task.ID}); err != nil {
			return err
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("deleted task '%s'", task.Title),
			&user.ID,
			&workspaceID,
		)
	})
}

// RequireTask returns NotFound unless the task belongs to the workspace.
func (s *TaskService) RequireTask(workspaceID, taskID uuid.UUID) (*Task, error) {
	task, err := s.FindTask(storage.GetDb(), workspaceID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("Task not found")
	}

	return task, nil
}

// FindTask returns nil when the task is missing or belongs to another
// workspace.
func (s *TaskService) FindTask(tx *gorm.DB, workspaceID, taskID uuid.UUID) (*Task, error) {
	task, err := s.taskRepository.FindByID(tx, workspaceID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

func (s *TaskService) GetWorkspaceTasks(workspaceID uuid.UUID, filter *TaskFilter) ([]*TaskDTO, error) {
	tasks, err := s.taskRepository.GetByWorkspace(workspaceID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskService) CountWorkspaceTasks(workspaceID uuid.UUID, projectID *uuid.UUID) (int64, error) {
	total, err := s.taskRepository.CountByWorkspace(workspaceID, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return total, nil
}

// CountTasksByColumn maps column id to task count. Tasks without a column are
// counted under uuid.Nil.
func (s *TaskService) CountTasksByColumn(
	workspaceID uuid.UUID,
	projectID *uuid.UUID,
) (map[uuid.UUID]int64, error) {
	counts, err := s.taskRepository.CountByColumn(workspaceID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by column: %w", err)
	}

	byColumn := make(map[uuid.UUID]int64, len(counts))
	for _, count := range counts {
		columnID := uuid.Nil
		if count.StatusColumnID != nil {
			columnID = *count.StatusColumnID
		}
		byColumn[columnID] += count.Count
	}

	return byColumn, nil
}

func (s *TaskService) MoveTask(tx *gorm.DB, taskID, columnID uuid.UUID) error {
	if err := s.taskRepository.UpdateStatusColumn(tx, taskID, columnID); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	return nil
}

// ReassignColumn moves every task of one column to another and reports how
// many were moved.
func (s *TaskService) ReassignColumn(tx *gorm.DB, fromColumnID, toColumnID uuid.UUID) (int64, error) {
	moved, err := s.taskRepository.ReassignColumn(tx, fromColumnID, toColumnID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign tasks: %w", err)
	}

	return moved, nil
}

func (s *TaskService) OnBeforeProjectDeletion(tx *gorm.DB, projectID uuid.UUID) error {
	taskIDs, err := s.taskRepository.GetIDsByProject(tx, projectID)
	if err != nil {
		return fmt.Errorf("failed to get project tasks: %w", err)
	}

	return s.deleteTasks(tx, taskIDs)
}

func (s *TaskService) deleteTasks(tx *gorm.DB, taskIDs []uuid.UUID) error {
	if len(taskIDs) == 0 {
		return nil
	}

	for _, listener := range s.taskDeletionListeners {
		if err := listener.OnBeforeTasksDeletion(tx, taskIDs); err != nil {
			return fmt.Errorf("failed to delete task data: %w", err)
		}
	}

	if err := s.taskRepository.DeleteByIDs(tx, taskIDs); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	return nil
}

func (s *TaskService) resolveColumn(
	tx *gorm.DB,
	workspaceID uuid.UUID,
	columnID *uuid.UUID,
) (*status_columns.StatusColumn, error) {
	if columnID == nil {
		column, err := s.statusColumnService.GetDefaultColumn(tx, workspaceID)
		if err != nil {
			return nil, err
		}
		if column == nil {
			return nil, apperrors.Validation("Invalid status column")
		}

		return column, nil
	}

	column, err := s.statusColumnService.FindColumn(tx, workspaceID, *columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, apperrors.Validation("Invalid status column")
	}

	return column, nil
}

func (s *TaskService) checkAssignee(workspaceID uuid.UUID, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}

	membership, err := s.workspaceService.GetMembership(workspaceID, *assigneeID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperrors.Validation("Assignee must be a member of this workspace")
	}

	return nil
}

func (s *TaskService) getTaskDetails(workspaceID, taskID uuid.UUID) (*TaskDTO, error) {
	task, err := s.taskRepository.GetDetails(workspaceID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, apperrors.NotFound("Task not found")
	}

	return task, nil
}

func canDeleteTask(
	task *Task,
	membership *workspaces_models.WorkspaceMembership,
	user *users_models.User,
) bool {
	return task.CreatedBy == user.ID || membership.Role.CanManageWorkspace()
}

func parseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	dueDate, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return nil, apperrors.Validation("Invalid due date, expected YYYY-MM-DD")
	}

	return &dueDate, nil
}

func parseOptionalID(value string, message string) (*uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apperrors.Validation(message)
	}

	return &id, nil
}
