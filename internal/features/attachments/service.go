package attachments

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
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

const defaultContentType = "application/octet-stream"

// UploadedFile is the part of a multipart upload the service needs.
type UploadedFile struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type AttachmentService struct {
	attachmentRepository *AttachmentRepository
	workspaceService     *workspaces_services.WorkspaceService
	taskService          *tasks.TaskService
	auditLogService      *audit_logs.AuditLogService
	fileStorage          FileStorage
	maxSizeBytes         int64
	logger               *slog.Logger
}

func (s *AttachmentService) UploadAttachment(
	ctx context.Context,
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	file *UploadedFile,
	user *users_models.User,
) (*Attachment, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	task, err := s.taskService.RequireTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	fileName := filepath.Base(strings.TrimSpace(file.FileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, apperrors.Validation("File name is required")
	}

	if file.Size <= 0 {
		return nil, apperrors.Validation("File is empty")
	}

	if s.maxSizeBytes > 0 && file.Size > s.maxSizeBytes {
		return nil, apperrors.Validation(
			fmt.Sprintf("File is too large, the limit is %d bytes", s.maxSizeBytes),
		)
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	attachment := &Attachment{
		ID:          uuid.New(),
		TaskID:      task.ID,
		UploadedBy:  user.ID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        file.Size,
	}
	attachment.ObjectKey = fmt.Sprintf("%s/%s", task.ID, attachment.ID)

	if err := s.fileStorage.SaveFile(
		ctx,
		s.logger,
		attachment.ObjectKey,
		file.Content,
		file.Size,
		contentType,
	); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.attachmentRepository.Create(tx, attachment); err != nil {
			return fmt.Errorf("failed to save attachment: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("attached '%s' to task '%s'", attachment.FileName, task.Title),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		s.deleteFileQuietly(ctx, attachment.ObjectKey)
		return nil, err
	}

	return attachment, nil
}

func (s *AttachmentService) GetAttachments(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) (*ListAttachmentsResponse, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, err
	}

	task, err := s.taskService.RequireTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepository.GetByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}

	return &ListAttachmentsResponse{Attachments: attachments}, nil
}

// OpenAttachment returns the attachment with a reader over its bytes. The
// caller closes the reader.
func (s *AttachmentService) OpenAttachment(
	ctx context.Context,
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	attachmentID uuid.UUID,
	user *users_models.User,
) (*Attachment, io.ReadCloser, error) {
	if _, _, err := s.workspaceService.RequireMembership(workspaceID, user); err != nil {
		return nil, nil, err
	}

	task, err := s.taskService.RequireTask(workspaceID, taskID)
	if err != nil {
		return nil, nil, err
	}

	attachment, err := s.requireAttachment(task.ID, attachmentID)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.fileStorage.GetFile(ctx, attachment.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return attachment, content, nil
}

// DeleteAttachment is allowed for the uploader and workspace admins. Removing
// the stored bytes is best effort once the row is gone.
func (s *AttachmentService) DeleteAttachment(
	ctx context.Context,
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	attachmentID uuid.UUID,
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

	attachment, err := s.requireAttachment(task.ID, attachmentID)
	if err != nil {
		return err
	}

	if attachment.UploadedBy != user.ID && !membership.IsAdmin() {
		return apperrors.AccessDenied("You can only delete your own attachments")
	}

	err = storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := s.attachmentRepository.Delete(tx, attachment.ID); err != nil {
			return fmt.Errorf("failed to delete attachment: %w", err)
		}

		return s.auditLogService.WriteAuditLogTx(
			tx,
			fmt.Sprintf("removed attachment '%s' from task '%s'", attachment.FileName, task.Title),
			&user.ID,
			&workspaceID,
		)
	})
	if err != nil {
		return err
	}

	s.deleteFileQuietly(ctx, attachment.ObjectKey)

	return nil
}

func (s *AttachmentService) OnBeforeTasksDeletion(tx *gorm.DB, taskIDs []uuid.UUID) error {
	attachments, err := s.attachmentRepository.GetByTasks(tx, taskIDs)
	if err != nil {
		return fmt.Errorf("failed to get task attachments: %w", err)
	}

	if err := s.attachmentRepository.DeleteByTasks(tx, taskIDs); err != nil {
		return fmt.Errorf("failed to delete task attachments: %w", err)
	}

	storage.AfterCommit(tx, func() {
		for _, attachment := range attachments {
			s.deleteFileQuietly(context.Background(), attachment.ObjectKey)
		}
	})

	return nil
}

func (s *AttachmentService) requireAttachment(taskID, attachmentID uuid.UUID) (*Attachment, error) {
	attachment, err := s.attachmentRepository.FindByID(taskID, attachmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	if attachment == nil {
		return nil, apperrors.NotFound("Attachment not found")
	}

	return attachment, nil
}

func (s *AttachmentService) deleteFileQuietly(ctx context.Context, key string) {
	if err := s.fileStorage.DeleteFile(ctx, key); err != nil {
		s.logger.Warn("Failed to delete attachment file", "key", key, "error", err)
	}
}
