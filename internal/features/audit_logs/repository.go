package audit_logs

import (
	"strings"
	"time"

	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository struct{}

type auditLogFilter struct {
	User     string
	Action   string
	DateFrom *time.Time
	DateTo   *time.Time
	UserID   *uuid.UUID
	Limit    int
	Offset   int
}

func (r *AuditLogRepository) Create(tx *gorm.DB, auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	if auditLog.CreatedAt.IsZero() {
		auditLog.CreatedAt = time.Now().UTC()
	}

	return tx.Create(auditLog).Error
}

func (r *AuditLogRepository) GetByWorkspace(
	workspaceID uuid.UUID,
	filter *auditLogFilter,
) ([]*AuditLogDTO, int64, error) {
	auditLogs := make([]*AuditLogDTO, 0)
	var total int64

	countQuery := r.applyFilter(
		storage.GetDb().
			Table("audit_logs al").
			Joins("LEFT JOIN users u ON al.user_id = u.id").
			Where("al.workspace_id = ?", workspaceID),
		filter,
	)

	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dataQuery := r.applyFilter(
		storage.GetDb().
			Table("audit_logs al").
			Select(`
				al.id,
				al.user_id,
				al.workspace_id,
				al.message,
				al.created_at,
				u.username,
				u.email as user_email,
				u.name as user_name
			`).
			Joins("LEFT JOIN users u ON al.user_id = u.id").
			Where("al.workspace_id = ?", workspaceID),
		filter,
	).
		Order("al.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset)

	if err := dataQuery.Scan(&auditLogs).Error; err != nil {
		return nil, 0, err
	}

	return auditLogs, total, nil
}

func (r *AuditLogRepository) GetRecentByWorkspace(
	workspaceID uuid.UUID,
	limit int,
) ([]*AuditLogDTO, error) {
	auditLogs, _, err := r.GetByWorkspace(workspaceID, &auditLogFilter{Limit: limit})
	return auditLogs, err
}

func (r *AuditLogRepository) CountByWorkspaceSince(
	workspaceID uuid.UUID,
	since time.Time,
) (int64, error) {
	var total int64

	query := storage.GetSqlx().Rebind(
		`SELECT COUNT(*) FROM audit_logs WHERE workspace_id = ? AND created_at >= ?`,
	)

	if err := storage.GetSqlx().Get(&total, query, workspaceID, since); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *AuditLogRepository) GetTopUsers(
	workspaceID uuid.UUID,
	since time.Time,
	limit int,
) ([]*UserActivityCountDTO, error) {
	users := make([]*UserActivityCountDTO, 0)

	query := storage.GetSqlx().Rebind(`
		SELECT u.id AS user_id, u.username AS username, COUNT(*) AS action_count
		FROM audit_logs al
		JOIN users u ON al.user_id = u.id
		WHERE al.workspace_id = ? AND al.created_at >= ?
		GROUP BY u.id, u.username
		ORDER BY action_count DESC, u.username ASC
		LIMIT ?`)

	if err := storage.GetSqlx().Select(&users, query, workspaceID, since, limit); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *AuditLogRepository) GetTopActions(
	workspaceID uuid.UUID,
	since time.Time,
	limit int,
) ([]*ActionCountDTO, error) {
	actions := make([]*ActionCountDTO, 0)

	query := storage.GetSqlx().Rebind(`
		SELECT message AS action, COUNT(*) AS action_count
		FROM audit_logs
		WHERE workspace_id = ? AND created_at >= ?
		GROUP BY message
		ORDER BY action_count DESC, message ASC
		LIMIT ?`)

	if err := storage.GetSqlx().Select(&actions, query, workspaceID, since, limit); err != nil {
		return nil, err
	}

	return actions, nil
}

func (r *AuditLogRepository) GetCreationTimesSince(
	workspaceID uuid.UUID,
	since time.Time,
) ([]time.Time, error) {
	times := make([]time.Time, 0)

	query := storage.GetSqlx().Rebind(
		`SELECT created_at FROM audit_logs WHERE workspace_id = ? AND created_at >= ?`,
	)

	if err := storage.GetSqlx().Select(&times, query, workspaceID, since); err != nil {
		return nil, err
	}

	return times, nil
}

func (r *AuditLogRepository) DeleteByWorkspace(tx *gorm.DB, workspaceID uuid.UUID) error {
	return tx.Where("workspace_id = ?", workspaceID).Delete(&AuditLog{}).Error
}

func (r *AuditLogRepository) applyFilter(query *gorm.DB, filter *auditLogFilter) *gorm.DB {
	if filter.User != "" {
		query = query.Where(`LOWER(u.username) LIKE ? ESCAPE '\'`, containsPattern(filter.User))
	}

	if filter.Action != "" {
		query = query.Where(`LOWER(al.message) LIKE ? ESCAPE '\'`, containsPattern(filter.Action))
	}

	if filter.DateFrom != nil {
		query = query.Where("al.created_at >= ?", *filter.DateFrom)
	}

	if filter.DateTo != nil {
		query = query.Where("al.created_at < ?", *filter.DateTo)
	}

	if filter.UserID != nil {
		query = query.Where("al.user_id = ?", *filter.UserID)
	}

	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern in which the
// input's own wildcards match literally.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(value))) + "%"
}
