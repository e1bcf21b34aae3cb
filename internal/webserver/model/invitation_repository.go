package model

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/sentinel"
	"gorm.io/gorm"
)

type InvitationRepository struct {
	DB *gorm.DB
}

func (i *InvitationRepository) Create(invitation *Invitation) error {
	if result := i.DB.Create(invitation); result.Error != nil {
		log.Errorf("error creating invitation: %s", result.Error)
		return result.Error
	}
	return nil
}

// Latest returns the most recent invitation of a burial record which has not
// been superseded
func (i *InvitationRepository) Latest(recordID uint) (*Invitation, error) {
	var invitation Invitation

	result := i.DB.Where("burial_record_id = ? AND status <> ?", recordID, InvitationSuperseded).
		Order("id DESC").
		First(&invitation)
	if result.Error != nil {
		return nil, notFound(result.Error, "invitation")
	}
	return &invitation, nil
}

func (i *InvitationRepository) FindBySelector(selector string) (*Invitation, error) {
	var invitation Invitation

	result := i.DB.Where("selector = ?", selector).First(&invitation)
	if result.Error != nil {
		return nil, notFound(result.Error, "invitation")
	}
	return &invitation, nil
}

// SupersedePending invalidates every pending invitation of a burial record and
// wipes the secrets they held
func (i *InvitationRepository) SupersedePending(recordID uint) error {
	result := i.DB.Model(&Invitation{}).
		Where("burial_record_id = ? AND status = ?", recordID, InvitationPending).
		Updates(map[string]any{
			"status":                  InvitationSuperseded,
			"sealed_password":         "",
			"temporary_password_hash": "",
		})
	if result.Error != nil {
		log.Errorf("error superseding invitations: %s", result.Error)
		return result.Error
	}
	return nil
}

// MarkAccepted flips a pending invitation to accepted. It fails with
// sentinel.ErrConflict if the invitation stopped being pending in the meantime.
func (i *InvitationRepository) MarkAccepted(invitation *Invitation, userID uint, at time.Time) error {
	result := i.DB.Model(&Invitation{}).
		Where("id = ? AND status = ?", invitation.ID, InvitationPending).
		Updates(map[string]any{
			"status":                  InvitationAccepted,
			"accepted_at":             at,
			"user_id":                 userID,
			"sealed_password":         "",
			"temporary_password_hash": "",
		})
	if result.Error != nil {
		log.Errorf("error accepting invitation: %s", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return sentinel.ErrConflict
	}

	invitation.Status = InvitationAccepted
	invitation.AcceptedAt = &at
	invitation.UserID = &userID
	invitation.SealedPassword = ""
	invitation.TemporaryPasswordHash = ""
	return nil
}

// AcceptedByUser reports whether the user activated their account through an invitation
func (i *InvitationRepository) AcceptedByUser(userID uint) (bool, error) {
	var count int64

	result := i.DB.Model(&Invitation{}).
		Where("user_id = ? AND status = ?", userID, InvitationAccepted).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
