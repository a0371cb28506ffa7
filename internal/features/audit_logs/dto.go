package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type GetAuditLogsRequest struct {
	User     string `form:"user"      json:"user"`
	Action   string `form:"action"    json:"action"`
	DateFrom string `form:"date_from" json:"dateFrom"`
	DateTo   string `form:"date_to"   json:"dateTo"`
	Page     int    `form:"page"      json:"page"`
	PageSize int    `form:"pageSize"  json:"pageSize"`
}

type GetAuditLogsResponse struct {
	AuditLogs  []*AuditLogDTO `json:"auditLogs"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

type AuditLogDTO struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id"`
	UserID      *uuid.UUID `json:"userId"      gorm:"column:user_id"`
	WorkspaceID *uuid.UUID `json:"workspaceId" gorm:"column:workspace_id"`
	Message     string     `json:"message"     gorm:"column:message"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at"`
	Username    *string    `json:"username"    gorm:"column:username"`
	UserEmail   *string    `json:"userEmail"   gorm:"column:user_email"`
	UserName    *string    `json:"userName"    gorm:"column:user_name"`
}

type UserActivityCountDTO struct {
	UserID      uuid.UUID `json:"userId"      db:"user_id"`
	Username    string    `json:"username"    db:"username"`
	ActionCount int64     `json:"actionCount" db:"action_count"`
}

type ActionCountDTO struct {
	Action string `json:"action" db:"action"`
	Count  int64  `json:"count"  db:"action_count"`
}

type DailyActivityDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ActivitySummaryDTO struct {
	PeriodDays    int                     `json:"periodDays"`
	TotalActions  int64                   `json:"totalActions"`
	TopUsers      []*UserActivityCountDTO `json:"topUsers"`
	TopActions    []*ActionCountDTO       `json:"topActions"`
	DailyActivity []*DailyActivityDTO     `json:"dailyActivity"`
}
