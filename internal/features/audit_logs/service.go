package audit_logs

import (
	"fmt"
	"math"
	"time"

	"picktask-backend/internal/storage"
	"picktask-backend/internal/util/apperrors"
	"picktask-backend/internal/util/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultPageSize      = 25
	UserActivityPageSize = 20
	maxPageSize          = 100

	summaryPeriodDays = 30
	dailyTrendDays    = 7
	topUsersLimit     = 5
	topActionsLimit   = 10

	dateLayout = "2006-01-02"
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
}

// WriteAuditLog records an event that is not part of a larger transaction.
// Failures are logged and swallowed.
func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
) {
	if err := s.WriteAuditLogTx(storage.GetDb(), message, userID, workspaceID); err != nil {
		logger.GetLogger().Error(
			"Failed to write audit log",
			"message", message,
			"error", err,
		)
	}
}

// WriteAuditLogTx records the entry inside the caller's transaction so that
// the mutation and its activity row commit together.
func (s *AuditLogService) WriteAuditLogTx(
	tx *gorm.DB,
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
) error {
	auditLog := &AuditLog{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.auditLogRepository.Create(tx, auditLog); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	filter, page, pageSize, err := s.buildFilter(request, DefaultPageSize)
	if err != nil {
		return nil, err
	}

	auditLogs, total, err := s.auditLogRepository.GetByWorkspace(workspaceID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	return newAuditLogsResponse(auditLogs, total, page, pageSize), nil
}

// GetUserActivity lists one user's entries in the workspace. Callers verify
// that the user belongs to the workspace.
func (s *AuditLogService) GetUserActivity(
	workspaceID uuid.UUID,
	userID uuid.UUID,
	page int,
) (*GetAuditLogsResponse, error) {
	filter, page, pageSize, err := s.buildFilter(
		&GetAuditLogsRequest{Page: page},
		UserActivityPageSize,
	)
	if err != nil {
		return nil, err
	}
	filter.UserID = &userID

	auditLogs, total, err := s.auditLogRepository.GetByWorkspace(workspaceID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get user activity: %w", err)
	}

	return newAuditLogsResponse(auditLogs, total, page, pageSize), nil
}

func (s *AuditLogService) GetRecentWorkspaceActivity(
	workspaceID uuid.UUID,
	limit int,
) ([]*AuditLogDTO, error) {
	auditLogs, err := s.auditLogRepository.GetRecentByWorkspace(workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}

	return auditLogs, nil
}

func (s *AuditLogService) GetWorkspaceActivitySummary(
	workspaceID uuid.UUID,
) (*ActivitySummaryDTO, error) {
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -summaryPeriodDays)

	total, err := s.auditLogRepository.CountByWorkspaceSince(workspaceID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}

	topUsers, err := s.auditLogRepository.GetTopUsers(workspaceID, since, topUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get most active users: %w", err)
	}

	topActions, err := s.auditLogRepository.GetTopActions(workspaceID, since, topActionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get most common actions: %w", err)
	}

	trendStart := startOfDay(now).AddDate(0, 0, -(dailyTrendDays - 1))
	creationTimes, err := s.auditLogRepository.GetCreationTimesSince(workspaceID, trendStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily activity: %w", err)
	}

	return &ActivitySummaryDTO{
		PeriodDays:    summaryPeriodDays,
		TotalActions:  total,
		TopUsers:      topUsers,
		TopActions:    topActions,
		DailyActivity: bucketByDay(creationTimes, trendStart, dailyTrendDays),
	}, nil
}

func (s *AuditLogService) DeleteWorkspaceAuditLogs(tx *gorm.DB, workspaceID uuid.UUID) error {
	if err := s.auditLogRepository.DeleteByWorkspace(tx, workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace audit logs: %w", err)
	}

	return nil
}

func (s *AuditLogService) buildFilter(
	request *GetAuditLogsRequest,
	defaultPageSize int,
) (*auditLogFilter, int, int, error) {
	page := request.Page
	if page < 1 {
		page = 1
	}

	pageSize := request.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := &auditLogFilter{
		User:   request.User,
		Action: request.Action,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	if request.DateFrom != "" {
		dateFrom, err := time.Parse(dateLayout, request.DateFrom)
		if err != nil {
			return nil, 0, 0, apperrors.Validation("Invalid date_from, expected YYYY-MM-DD")
		}
		filter.DateFrom = &dateFrom
	}

	if request.DateTo != "" {
		dateTo, err := time.Parse(dateLayout, request.DateTo)
		if err != nil {
			return nil, 0, 0, apperrors.Validation("Invalid date_to, expected YYYY-MM-DD")
		}

		// date_to is inclusive
		dateToExclusive := dateTo.AddDate(0, 0, 1)
		filter.DateTo = &dateToExclusive
	}

	return filter, page, pageSize, nil
}

func newAuditLogsResponse(
	auditLogs []*AuditLogDTO,
	total int64,
	page, pageSize int,
) *GetAuditLogsResponse {
	return &GetAuditLogsResponse{
		AuditLogs:  auditLogs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
}

func bucketByDay(times []time.Time, start time.Time, days int) []*DailyActivityDTO {
	counts := make(map[string]int64, days)
	for _, t := range times {
		counts[t.UTC().Format(dateLayout)]++
	}

	daily := make([]*DailyActivityDTO, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		daily = append(daily, &DailyActivityDTO{Date: date, Count: counts[date]})
	}

	return daily
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
