package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	OrderTypeProductTopup = "product_topup"
	OrderTypeWalletLoad   = "wallet_load"
)

const (
	StatusPendingPayment    = "pending_payment"
	StatusWalletPartialPaid = "wallet_partial_paid"
	StatusWalletFullyPaid   = "wallet_fully_paid"
	StatusPaid              = "paid"
	StatusQueued            = "queued"
	StatusProcessing        = "processing"
	StatusSuccess           = "success"
	StatusFailed            = "failed"
	StatusManualReview      = "manual_review"
	StatusSuspicious        = "suspicious"
	StatusDuplicatePayment  = "duplicate_payment"
	StatusInvalidUID        = "invalid_uid"
	StatusExpired           = "expired"
	StatusRefunded          = "refunded"
)

type Order struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	OrderType string `gorm:"size:16;index" json:"order_type"`
	UserID    string `gorm:"size:36;index" json:"user_id"`
	Username  string `gorm:"size:64" json:"username"`

	PlayerUID string `gorm:"size:32" json:"player_uid"`
	Server    string `gorm:"size:32" json:"server"`

	// Package snapshot taken at creation; catalog changes never touch it.
	PackageID   string `gorm:"size:36" json:"package_id"`
	PackageName string `gorm:"size:128" json:"package_name"`
	PackageType string `gorm:"size:32" json:"package_type"`
	Amount      int    `json:"amount"`

	LockedPricePaisa     int64 `json:"locked_price_paisa"`
	WalletUsedPaisa      int64 `json:"wallet_used_paisa"`
	PaymentRequiredPaisa int64 `json:"payment_required_paisa"`
	PaymentAmountPaisa   int64 `json:"payment_amount_paisa"`
	LoadAmountPaisa      int64 `json:"load_amount_paisa"`

	PaymentLast3Digits   string  `gorm:"column:payment_last3digits;size:3;index" json:"payment_last3digits"`
	PaymentMethod        string  `gorm:"size:32" json:"payment_method"`
	PaymentRemark        string  `gorm:"size:255" json:"payment_remark"`
	PaymentScreenshot    string  `json:"payment_screenshot"`
	PaymentRRN           *string `gorm:"size:64;uniqueIndex" json:"payment_rrn"`
	PaymentReceivedPaisa int64   `json:"payment_received_paisa"`
	OverpaymentPaisa     int64   `json:"overpayment_paisa"`
	RawMessage           string  `json:"raw_message"`
	SmsFingerprint       *string `gorm:"size:64;uniqueIndex" json:"sms_fingerprint"`

	Status            string         `gorm:"size:24;index" json:"status"`
	AutomationState   string         `gorm:"size:64" json:"automation_state"`
	AutomationHistory datatypes.JSON `json:"automation_history"`
	RetryCount        int            `json:"retry_count"`
	SuspiciousReason  string         `gorm:"size:255" json:"suspicious_reason"`
	Notes             string         `gorm:"size:255" json:"notes"`

	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	QueuedAt            *time.Time `json:"queued_at"`
	ProcessingStartedAt *time.Time `json:"processing_started_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	ExpiredAt           *time.Time `json:"expired_at"`
}

// ShortID is the order reference shown to users and written into ledger notes.
func (o *Order) ShortID() string {
	if len(o.ID) < 8 {
		return "#" + strings.ToUpper(o.ID)
	}
	return "#" + strings.ToUpper(o.ID[:8])
}
