package model

import "time"

// QRCode binds an opaque public code to the plot of a burial record. At most
// one code per record is active; older codes are kept, inactive, as history.
type QRCode struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Code           string `gorm:"uniqueIndex; not null"`
	BurialRecordID uint   `gorm:"index; not null"`
	PlotID         *uint
	URL            string `gorm:"not null"`
	Active         bool   `gorm:"not null; default:true"`
	GeneratedAt    time.Time
	DeactivatedAt  *time.Time
}
