package models

import (
	"time"
)

// AdminAction is the audit trail row written by every admin-facing mutation.
// AdminID is always the explicit acting admin, never inferred.
type AdminAction struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	AdminID    string `gorm:"size:36;index" json:"admin_id"`
	ActionType string `gorm:"size:32;index" json:"action_type"`
	TargetID   string `gorm:"size:36" json:"target_id"`
	Details    string `gorm:"size:255" json:"details"`

	CreatedAt time.Time `json:"created_at"`
}
