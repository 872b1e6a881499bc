package models

import "time"

// Product is a sellable item or service. Scoped to one account.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AccountID   uint    `gorm:"index;not null" json:"account_id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description,omitempty"`
	Price       float64 `gorm:"not null" json:"price"`
}
