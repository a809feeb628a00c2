package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"_id"`
	Email     string    `gorm:"index" json:"email"`
	Name      string    `json:"name,omitempty"`
	Rating    int       `gorm:"check:rating >= 0 AND rating <= 5" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (review *Review) BeforeCreate(*gorm.DB) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	return nil
}
