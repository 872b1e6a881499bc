package models

import "time"

// User is a sales advisor ("asesor") belonging to exactly one account.
// Advisors do not log in; their password is auto-generated at creation and
// kept only so login rights can be granted later.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AccountID uint   `gorm:"index;not null" json:"account_id"`
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName  string `gorm:"size:255" json:"full_name,omitempty"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`
	Password  string `gorm:"size:255;not null" json:"-"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
}
