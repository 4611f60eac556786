package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"nexstore/config"
	"nexstore/helpers"
	"nexstore/models"

	"gorm.io/gorm"
)

var ErrDuplicateRRN = errors.New("rrn already used")

// Statuses a payment can still land on.
var matchableStatuses = []string{
	models.StatusPendingPayment,
	models.StatusWalletPartialPaid,
	models.StatusManualReview,
}

// SelectCandidate picks the order a payment belongs to: exact ask-amount
// match, oldest first. No other heuristic overrides FIFO.
func SelectCandidate(orders []models.Order, amountPaisa int64) *models.Order {
	var best *models.Order
	for i := range orders {
		if orders[i].PaymentAmountPaisa != amountPaisa {
			continue
		}
		if best == nil || orders[i].CreatedAt.Before(best.CreatedAt) {
			best = &orders[i]
		}
	}
	return best
}

// TryMatchSms finds the order for a parsed payment, or nil when the money
// cannot be attributed. ErrDuplicateRRN is the only hard rejection.
func TryMatchSms(db *gorm.DB, sms *models.SmsMessage) (*models.Order, error) {
	if sms.AmountPaisa <= 0 || sms.Last3Digits == "" {
		return nil, nil
	}

	if sms.RRN != nil && *sms.RRN != "" {
		var count int64
		if err := db.Model(&models.Order{}).
			Where("payment_rrn = ?", *sms.RRN).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			log.Printf("⚠️  duplicate RRN %s on sms %s", *sms.RRN, sms.ID)
			return nil, ErrDuplicateRRN
		}
	}

	var candidates []models.Order
	if err := db.Where(
		"status IN ? AND payment_last3digits = ? AND payment_amount_paisa = ?",
		matchableStatuses, sms.Last3Digits, sms.AmountPaisa,
	).Order("created_at ASC").Limit(20).Find(&candidates).Error; err != nil {
		return nil, err
	}

	return SelectCandidate(candidates, sms.AmountPaisa), nil
}

// ReferenceConflict reports whether the payment reference or raw-message
// fingerprint is already recorded on an order other than orderID. Either hit
// means the same payment would back two orders.
func ReferenceConflict(orders []models.Order, orderID, rrn, fingerprint string) bool {
	for i := range orders {
		o := &orders[i]
		if o.ID == orderID {
			continue
		}
		if rrn != "" && o.PaymentRRN != nil && *o.PaymentRRN == rrn {
			return true
		}
		if fingerprint != "" && o.SmsFingerprint != nil && *o.SmsFingerprint == fingerprint {
			return true
		}
	}
	return false
}

type PaymentResult struct {
	Status           string
	OverpaymentPaisa int64
	Message          string
}

// ProcessPayment settles a payment against an order inside one transaction:
// safety caps first, then the paid transition, overpayment credit, and the
// wallet-load credit when applicable. The amount may exceed the order's
// required figure (admin manual match allows it); the excess goes to the
// user's wallet unless the caps say otherwise.
func ProcessPayment(db *gorm.DB, order *models.Order, amountPaisa int64, rrn, rawMessage, fingerprint, smsID string) (PaymentResult, error) {
	cfg := config.Load()

	if IsTerminal(order.Status) {
		return PaymentResult{}, ErrStatusConflict
	}

	required := order.PaymentRequiredPaisa
	overpayment := amountPaisa - required
	if overpayment < 0 {
		overpayment = 0
	}

	var rrnPtr *string
	if rrn != "" {
		rrnPtr = &rrn
	}
	var fpPtr *string
	if fingerprint != "" {
		fpPtr = &fingerprint
	}

	base := map[string]any{
		"payment_received_paisa": amountPaisa,
		"payment_rrn":            rrnPtr,
		"raw_message":            rawMessage,
		"sms_fingerprint":        fpPtr,
	}

	// Cap 1: grossly oversized payments are never settled automatically.
	if float64(amountPaisa) > float64(required)*cfg.MaxOverpaymentRatio {
		base["suspicious_reason"] = fmt.Sprintf(
			"Payment ₹%.2f is more than %.0fx required ₹%.2f",
			helpers.PaisaToRupees(amountPaisa), cfg.MaxOverpaymentRatio, helpers.PaisaToRupees(required))
		if err := TransitionOrder(db, order.ID, []string{order.Status}, models.StatusSuspicious, base); err != nil {
			return PaymentResult{}, err
		}
		return PaymentResult{
			Status:  models.StatusSuspicious,
			Message: "Payment flagged as suspicious due to large overpayment",
		}, nil
	}

	// Cap 2: oversized change is parked for a human instead of auto-credited.
	if overpayment > cfg.MaxAutoCreditPaisa {
		base["overpayment_paisa"] = overpayment
		base["suspicious_reason"] = fmt.Sprintf(
			"Overpayment ₹%.2f exceeds auto-credit limit", helpers.PaisaToRupees(overpayment))
		if err := TransitionOrder(db, order.ID, []string{order.Status}, models.StatusSuspicious, base); err != nil {
			return PaymentResult{}, err
		}
		return PaymentResult{
			Status:  models.StatusSuspicious,
			Message: "Overpayment too large for auto-credit, needs manual review",
		}, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		base["overpayment_paisa"] = overpayment
		if err := TransitionOrder(tx, order.ID, []string{order.Status}, models.StatusPaid, base); err != nil {
			return err
		}

		if overpayment > 0 {
			if _, err := CreditWallet(tx, order.UserID, overpayment, models.TrxOverpaymentCredit,
				order.ID, smsID, "Overpayment from order "+order.ShortID()); err != nil {
				return err
			}
		}

		if order.OrderType == models.OrderTypeWalletLoad && order.LoadAmountPaisa > 0 {
			if _, err := CreditWallet(tx, order.UserID, order.LoadAmountPaisa, models.TrxWalletLoad,
				order.ID, smsID, "Wallet load from order "+order.ShortID()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return PaymentResult{}, err
	}

	return PaymentResult{
		Status:           models.StatusPaid,
		OverpaymentPaisa: overpayment,
		Message:          "Payment processed successfully",
	}, nil
}

// MarkSmsUsed flips the event from unmatched to matched; this happens exactly
// once in an SMS's lifetime.
func MarkSmsUsed(db *gorm.DB, smsID, orderID string) error {
	now := time.Now().UTC()
	res := db.Model(&models.SmsMessage{}).
		Where("id = ? AND used = false", smsID).
		Updates(map[string]any{
			"used":             true,
			"matched_order_id": orderID,
			"matched_at":       now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}
