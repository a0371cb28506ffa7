package attachments

import (
	"context"

	"picktask-backend/internal/config"
	local_storage "picktask-backend/internal/features/attachments/local"
	s3_storage "picktask-backend/internal/features/attachments/s3"
	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/tasks"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/util/logger"
)

var attachmentRepository = &AttachmentRepository{}
var attachmentService = &AttachmentService{
	attachmentRepository,
	workspaces_services.GetWorkspaceService(),
	tasks.GetTaskService(),
	audit_logs.GetAuditLogService(),
	newFileStorage(),
	config.GetEnv().MaxAttachmentSizeBytes,
	logger.GetLogger(),
}
var attachmentController = &AttachmentController{
	attachmentService,
}

func GetAttachmentService() *AttachmentService {
	return attachmentService
}

func GetAttachmentController() *AttachmentController {
	return attachmentController
}

func SetupDependencies() {
	tasks.GetTaskService().AddTaskDeletionListener(attachmentService)
}

// newFileStorage uses S3 when S3_ENDPOINT is configured and local disk
// otherwise.
func newFileStorage() FileStorage {
	env := config.GetEnv()
	log := logger.GetLogger()

	if env.S3Endpoint == "" {
		return local_storage.NewLocalStorage(env.AttachmentsFolder, env.AttachmentsTempFolder)
	}

	s3Storage, err := s3_storage.NewS3Storage(
		env.S3Endpoint,
		env.S3AccessKey,
		env.S3SecretKey,
		env.S3Bucket,
		env.S3UseSSL,
	)
	if err != nil {
		log.Error("Failed to configure S3 attachment storage, using local disk", "error", err)
		return local_storage.NewLocalStorage(env.AttachmentsFolder, env.AttachmentsTempFolder)
	}

	if err := s3Storage.EnsureBucket(context.Background()); err != nil {
		log.Warn("Attachment bucket is not available yet", "error", err)
	}

	return s3Storage
}
