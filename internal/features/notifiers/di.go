package notifiers

import (
	"strings"

	"picktask-backend/internal/config"
	"picktask-backend/internal/features/notifiers/email_notifier"
	"picktask-backend/internal/util/logger"
)

var invitationNotifier = newInvitationNotifier()

func GetInvitationNotifier() *InvitationNotifier {
	return invitationNotifier
}

func newInvitationNotifier() *InvitationNotifier {
	env := config.GetEnv()

	notifier := &InvitationNotifier{
		siteURL: strings.TrimSuffix(env.SiteURL, "/"),
		logger:  logger.GetLogger(),
	}

	if env.SMTPHost != "" {
		notifier.emailSender = &email_notifier.SMTPSender{
			Host:     env.SMTPHost,
			Port:     env.SMTPPort,
			User:     env.SMTPUser,
			Password: env.SMTPPassword,
			From:     env.SMTPFrom,
		}
	}

	return notifier
}
