package models

import (
	"time"
)

type SmsMessage struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	RawMessage  string `json:"raw_message"`
	Fingerprint string `gorm:"uniqueIndex;size:64" json:"fingerprint"`

	AmountPaisa int64   `json:"amount_paisa"`
	Last3Digits string  `gorm:"column:last3digits;size:3;index" json:"last3digits"`
	RRN         *string `gorm:"size:64;uniqueIndex" json:"rrn"`
	Method      string  `gorm:"size:32" json:"method"`
	Remark      string  `gorm:"size:255" json:"remark"`
	ParseFailed bool    `gorm:"default:false" json:"parse_failed"`

	ParsedAt       time.Time  `json:"parsed_at"`
	Used           bool       `gorm:"default:false;index" json:"used"`
	MatchedOrderID string     `gorm:"size:36" json:"matched_order_id"`
	MatchedAt      *time.Time `json:"matched_at"`

	Suspicious       bool       `gorm:"default:false" json:"suspicious"`
	SuspiciousAt     *time.Time `json:"suspicious_at"`
	SuspiciousReason string     `gorm:"size:255" json:"suspicious_reason"`

	InputByAdmin string `gorm:"size:36" json:"input_by_admin"`
}
