package models

import (
	"time"
)

// GarenaAccount is one automation credential. Password and PIN are stored
// AES-GCM encrypted; the dispatcher decrypts them just before a delivery
// attempt. Accounts are never blacklisted automatically, only deactivated by
// an admin.
type GarenaAccount struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Email    string `gorm:"uniqueIndex;size:128" json:"email"`
	Password string `json:"-"`
	Pin      string `json:"-"`
	Active   bool   `gorm:"default:true;index" json:"active"`
	Notes    string `gorm:"size:255" json:"notes"`

	LastUsedAt *time.Time `gorm:"index" json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
