package model

import "time"

// Stored invitation states. "expired" is never stored: it is derived when
// reading a pending invitation past its ExpiresAt.
const (
	InvitationPending    = "pending"
	InvitationAccepted   = "accepted"
	InvitationSuperseded = "superseded"
)

// Invitation lets the primary contact of a burial record activate an account.
// The token itself is never stored, only its selector and a salted hash of
// its verifier. SealedPassword can only be opened with the token and is wiped
// once the invitation stops being pending.
type Invitation struct {
	ID                    uint `gorm:"primarykey"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	BurialRecordID        uint   `gorm:"index; not null"`
	ContactEmail          string `gorm:"index; not null"`
	Selector              string `gorm:"uniqueIndex; not null"`
	TokenSalt             string `gorm:"not null"`
	TokenHash             string `gorm:"not null"`
	TemporaryPasswordHash string
	SealedPassword        string
	IssuedAt              time.Time
	ExpiresAt             time.Time `gorm:"index"`
	Status                string    `gorm:"index; not null"`
	AcceptedAt            *time.Time
	UserID                *uint
}

// ExpiredAt reports whether the invitation can no longer be accepted at the given time
func (i Invitation) ExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
