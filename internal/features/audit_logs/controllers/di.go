package audit_logs_controllers

import (
	"picktask-backend/internal/features/audit_logs"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
)

var auditLogController = &AuditLogController{
	audit_logs.GetAuditLogService(),
	workspaces_services.GetWorkspaceService(),
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}
