package workspaces_services

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

const invitationCleanupSchedule = "@hourly"

type InvitationCleanupBackgroundService struct {
	membershipService *MembershipService
	logger            *slog.Logger
}

// Run blocks and purges expired invitations every hour.
func (s *InvitationCleanupBackgroundService) Run() {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(invitationCleanupSchedule, s.cleanup)
	if err != nil {
		s.logger.Error("Failed to schedule invitation cleanup", "error", err)
		return
	}

	s.cleanup()

	s.logger.Info("Invitation cleanup scheduled", "schedule", invitationCleanupSchedule)
	scheduler.Run()
}

func (s *InvitationCleanupBackgroundService) cleanup() {
	if err := s.membershipService.CleanupExpiredInvitations(); err != nil {
		s.logger.Error("Failed to clean up expired invitations", "error", err)
	}
}
