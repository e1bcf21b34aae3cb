package model

import (
	"net/mail"
	"strings"
	"time"
)

const (
	RoleFamily = iota + 1
	RoleStaff
	RoleAdmin
)

type User struct {
	ID                 uint `gorm:"primarykey"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Uuid               string `gorm:"uniqueIndex; not null"`
	Name               string
	Email              string `gorm:"type:text collate nocase; not null; uniqueIndex"`
	PasswordHash       string `gorm:"not null"`
	Role               int    `gorm:"not null"`
	MustChangePassword bool   `gorm:"not null; default:false"`
	Active             bool   `gorm:"not null; default:true"`
	RecoverySelector   string `gorm:"index"`
	RecoveryTokenSalt  string
	RecoveryTokenHash  string
	RecoveryValidUntil *time.Time
}

// RecoveryPending reports whether a password recovery link issued to the user
// can still be used at the given time
func (u User) RecoveryPending(now time.Time) bool {
	return u.RecoverySelector != "" && u.RecoveryValidUntil != nil && now.Before(*u.RecoveryValidUntil)
}

// IsOperator reports whether the user manages cemetery records
func (u User) IsOperator() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// NormalizeEmail trims and lower cases a bare address, returning an empty
// string if it is not valid. Addresses carrying a display name or angle
// brackets are rejected, so each mailbox has a single spelling.
func NormalizeEmail(raw string) string {
	email := strings.TrimSpace(raw)
	if email == "" {
		return ""
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return ""
	}
	return strings.ToLower(addr.Address)
}
