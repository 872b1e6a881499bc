package models

import "time"

// Account roles. The first account created in a deployment is the admin;
// every later account is a regular user.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account is the tenant root (the business owner, "titular"). Every other
// row in the system hangs off an account id, and every query must filter by
// it.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	FullName string `gorm:"size:255" json:"full_name,omitempty"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed
	Role     string `gorm:"size:20;not null;default:'user'" json:"role"`
}

// IsAdmin reports whether the account may use the admin-gated surface.
func (a *Account) IsAdmin() bool { return a.Role == RoleAdmin }
