package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"_id"`
	ToolsID   string    `gorm:"index;not null" json:"toolsId"`
	ToolName  string    `json:"toolName,omitempty"`
	Email     string    `gorm:"index;not null" json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Quantity  int       `gorm:"check:quantity > 0" json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

func (order *Order) BeforeCreate(*gorm.DB) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	return nil
}
