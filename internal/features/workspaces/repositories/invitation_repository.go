package workspaces_repositories

import (
	"strings"
	"time"

	workspaces_models "picktask-backend/internal/features/workspaces/models"
	"picktask-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct{}

func (r *InvitationRepository) CreateInvitation(
	tx *gorm.DB,
	invitation *workspaces_models.Invitation,
) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}

	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = time.Now().UTC()
	}

	invitation.Email = strings.ToLower(invitation.Email)

	return tx.Create(invitation).Error
}

func (r *InvitationRepository) GetPendingByEmail(
	tx *gorm.DB,
	email string,
	now time.Time,
) ([]*workspaces_models.Invitation, error) {
	invitations := make([]*workspaces_models.Invitation, 0)

	err := tx.
		Where("email = ? AND expires_at > ?", strings.ToLower(email), now).
		Order("created_at ASC").
		Find(&invitations).Error

	return invitations, err
}

func (r *InvitationRepository) GetPendingByWorkspace(
	workspaceID uuid.UUID,
	now time.Time,
) ([]*workspaces_models.Invitation, error) {
	invitations := make([]*workspaces_models.Invitation, 0)

	err := storage.GetDb().
		Where("workspace_id = ? AND expires_at > ?", workspaceID, now).
		Order("created_at DESC").
		Find(&invitations).Error

	return invitations, err
}

func (r *InvitationRepository) DeleteByWorkspaceAndEmail(
	tx *gorm.DB,
	workspaceID uuid.UUID,
	email string,
) error {
	return tx.
		Where("workspace_id = ? AND email = ?", workspaceID, strings.ToLower(email)).
		Delete(&workspaces_models.Invitation{}).Error
}

func (r *InvitationRepository) DeleteInvitation(tx *gorm.DB, invitationID uuid.UUID) error {
	return tx.Where("id = ?", invitationID).Delete(&workspaces_models.Invitation{}).Error
}

func (r *InvitationRepository) DeleteByWorkspace(tx *gorm.DB, workspaceID uuid.UUID) error {
	return tx.Where("workspace_id = ?", workspaceID).Delete(&workspaces_models.Invitation{}).Error
}

func (r *InvitationRepository) DeleteExpired(now time.Time) (int64, error) {
	result := storage.GetDb().
		Where("expires_at <= ?", now).
		Delete(&workspaces_models.Invitation{})

	return result.RowsAffected, result.Error
}
