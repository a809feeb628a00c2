package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tool struct {
	ID                string    `gorm:"primaryKey;type:varchar(64)" json:"_id"`
	Name              string    `gorm:"not null" json:"name" binding:"required"`
	Description       string    `json:"description,omitempty"`
	Image             string    `json:"image,omitempty"`
	MinimumQuantity   int       `gorm:"check:minimum_quantity >= 0" json:"minimumQuantity"`
	AvailableQuantity int       `gorm:"check:available_quantity >= 0" json:"availableQuantity"`
	Price             float64   `gorm:"check:price >= 0" json:"price"`
	Paid              bool      `json:"paid"`
	TransactionID     string    `json:"transactionID,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (tool *Tool) BeforeCreate(*gorm.DB) error {
	if tool.ID == "" {
		tool.ID = uuid.NewString()
	}
	return nil
}
