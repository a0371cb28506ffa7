package comments

import (
	"fmt"
	"strings"

	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/tasks"
	users_models "picktask-backend/internal/features/users/models"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	commentRepository *CommentRepository
	workspaceService  *workspaces_services.WorkspaceService
	taskService       *tasks.TaskService
	auditLogService   *audit_logs.AuditLogService
}

func (s *CommentService) AddComment(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	request *AddCommentRequest,
	user *users_models.User,
) (*Comment, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	task, err := s.taskService.RequireTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(request.Content)
	if content == "" {
		return nil, apperrors.Validation("Comment cannot be empty")
	}

	comment := &Comment{
		TaskID:   task.ID,
		AuthorID: user.ID,
		Content:  content,
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepository.Create(tx, comment); err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("commented on task '%s'", task.Title),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentService) GetComments(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) (*ListCommentsResponse, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	task, err := s.taskService.RequireTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.GetByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return &ListCommentsResponse{Comments: comments}, nil
}

// DeleteComment is allowed for the comment's author and workspace admins.
func (s *CommentService) DeleteComment(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	commentID uuid.UUID,
	user *users_models.User,
) error {
	_, membership, err := s.workspaceService.RequireMembership(workspaceID, user)
	if err != nil {
		return err
	}

	task, err := s.taskService.RequireTask(workspaceID, taskID)
	if err != nil {
		return err
	}

	comment, err := s.commentRepository.FindByID(task.ID, commentID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return apperrors.NotFound("Comment not found")
	}

	if comment.AuthorID != user.ID && !membership.IsAdmin() {
		return apperrors.AccessDenied("You can only delete your own comments")
	}

	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepository.Delete(tx, comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("deleted a comment on task '%s'", task.Title),
			&user.ID,
			&workspaceID,
		)
	})
}

func (s *CommentService) OnBeforeTasksDeletion(tx *gorm.DB, taskIDs []uuid.UUID) error {
	if err := s.commentRepository.DeleteByTasks(tx, taskIDs); err != nil {
		return fmt.Errorf("failed to delete task comments: %w", err)
	}

	return nil
}
