package notifiers

import (
	"fmt"
	"log/slog"

	users_enums "picktask-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// InvitationNotifier emails workspace invitations to unregistered addresses.
// Send failures are logged and never returned to the caller.
type InvitationNotifier struct {
	emailSender EmailSender
	siteURL     string
	logger      *slog.Logger
}

func (n *InvitationNotifier) SendWorkspaceInvitation(
	email string,
	workspaceID uuid.UUID,
	workspaceName string,
	role users_enums.WorkspaceRole,
) {
	if n.emailSender == nil {
		n.logger.Warn(
			"Email delivery is not configured, invitation not sent",
			"email", email,
			"workspaceId", workspaceID,
		)
		return
	}

	subject, body := n.buildInvitation(workspaceID, workspaceName, role)

	if err := n.emailSender.Send(email, subject, body); err != nil {
		n.logger.Error(
			"Failed to send workspace invitation",
			"email", email,
			"workspaceId", workspaceID,
			"error", err,
		)
		return
	}

	n.logger.Info("Workspace invitation sent", "email", email, "workspaceId", workspaceID)
}

func (n *InvitationNotifier) buildInvitation(
	workspaceID uuid.UUID,
	workspaceName string,
	role users_enums.WorkspaceRole,
) (string, string) {
	subject := fmt.Sprintf("Invitation to join %s on PickTask", workspaceName)

	body := fmt.Sprintf(
		"You've been invited to join %s on PickTask as %s. "+
			"Sign up at %s/auth/register/ and then visit %s/workspace/%s/",
		workspaceName,
		role.DisplayName(),
		n.siteURL,
		n.siteURL,
		workspaceID,
	)

	return subject, body
}
