package model

import (
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func (c *ContactRepository) FindByRecordAndSlot(recordID uint, slot string) (*Contact, error) {
	var contact Contact

	result := c.DB.Preload("User").
		Where("burial_record_id = ? AND slot = ?", recordID, slot).
		First(&contact)
	if result.Error != nil {
		return nil, notFound(result.Error, "contact")
	}
	return &contact, nil
}

// Save creates the contact if it is new, updating it otherwise
func (c *ContactRepository) Save(contact *Contact) error {
	if result := c.DB.Omit("User").Save(contact); result.Error != nil {
		log.Errorf("error saving contact: %s", result.Error)
		return result.Error
	}
	return nil
}

func (c *ContactRepository) LinkUser(contactID, userID uint) error {
	result := c.DB.Model(&Contact{}).Where("id = ?", contactID).Update("user_id", userID)
	if result.Error != nil {
		log.Errorf("error linking contact to user: %s", result.Error)
		return result.Error
	}
	return nil
}
