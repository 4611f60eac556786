package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                 string `gorm:"primaryKey;size:36" json:"id"`
	Username           string `gorm:"uniqueIndex;size:64" json:"username"`
	Phone              string `gorm:"size:20" json:"phone"`
	PasswordHash       string `gorm:"size:128" json:"-"`
	Role               string `gorm:"size:16;default:user" json:"role"`
	WalletBalancePaisa int64  `json:"wallet_balance_paisa"`
	Blocked            bool   `gorm:"default:false" json:"blocked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Transactions []WalletTransaction `gorm:"foreignKey:UserID;references:ID" json:"-"`
}
