package models

import (
	"time"
)

const (
	TrxOrderPayment      = "order_payment"
	TrxWalletLoad        = "wallet_load"
	TrxAdminRecharge     = "admin_recharge"
	TrxAdminRedeem       = "admin_redeem"
	TrxOverpaymentCredit = "overpayment_credit"
	TrxRefund            = "refund"
)

// WalletTransaction is an append-only ledger entry. AmountPaisa is signed:
// credits positive, debits negative. BalanceAfterPaisa is fixed at write time
// so the history stays a verifiable running total.
type WalletTransaction struct {
	ID                 string `gorm:"primaryKey;size:36" json:"id"`
	UserID             string `gorm:"size:36;index" json:"user_id"`
	Type               string `gorm:"size:24;index" json:"type"`
	AmountPaisa        int64  `json:"amount_paisa"`
	BalanceBeforePaisa int64  `json:"balance_before_paisa"`
	BalanceAfterPaisa  int64  `json:"balance_after_paisa"`
	OrderID            string `gorm:"size:36;index" json:"order_id"`
	SmsID              string `gorm:"size:36" json:"sms_id"`
	Description        string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
