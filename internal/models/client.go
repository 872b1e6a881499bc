package models

import "time"

// Client is a customer a quotation is addressed to. Scoped to one account.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AccountID      uint   `gorm:"index;not null" json:"account_id"`
	ClientIDNumber string `gorm:"size:100" json:"client_id_number,omitempty"`
	Name           string `gorm:"size:255;not null" json:"name"`
	ContactPerson  string `gorm:"size:255" json:"contact_person,omitempty"`
	Email          string `gorm:"size:255" json:"email,omitempty"`
	Phone          string `gorm:"size:50" json:"phone,omitempty"`
}
