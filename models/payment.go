package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"_id"`
	ToolID        string    `gorm:"index;not null" json:"toolId"`
	TransactionID string    `gorm:"uniqueIndex;not null" json:"transactionID"`
	Amount        float64   `gorm:"check:amount >= 0" json:"amount"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (payment *Payment) BeforeCreate(*gorm.DB) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	return nil
}
