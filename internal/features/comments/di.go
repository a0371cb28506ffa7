package comments

import (
	"picktask-backend/internal/features/audit_logs"
	"picktask-backend/internal/features/tasks"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
)

var commentRepository = &CommentRepository{}
var commentService = &CommentService{
	commentRepository,
	workspaces_services.GetWorkspaceService(),
	tasks.GetTaskService(),
	audit_logs.GetAuditLogService(),
}
var commentController = &CommentController{
	commentService,
}

func GetCommentService() *CommentService {
	return commentService
}

func GetCommentController() *CommentController {
	return commentController
}

func SetupDependencies() {
	tasks.GetTaskService().AddTaskDeletionListener(commentService)
}
