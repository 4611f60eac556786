package services

import (
	"errors"
	"time"

	"nexstore/models"

	"gorm.io/gorm"
)

// ErrStatusConflict means the conditional status update matched no row:
// another actor transitioned the order first, or it is already terminal.
var ErrStatusConflict = errors.New("order status changed concurrently")

// Terminal statuses are sticky against every automated transition; only
// explicit admin overrides act on them.
var terminalStatuses = map[string]bool{
	models.StatusSuccess:  true,
	models.StatusRefunded: true,
	models.StatusExpired:  true,
}

func IsTerminal(status string) bool {
	return terminalStatuses[status]
}

// Automated transition table. Admin overrides (mark-success, refund, retry)
// deliberately bypass it.
var allowedTransitions = map[string][]string{
	models.StatusPendingPayment: {
		models.StatusPaid, models.StatusSuspicious, models.StatusDuplicatePayment,
		models.StatusManualReview, models.StatusExpired,
	},
	models.StatusWalletPartialPaid: {
		models.StatusPaid, models.StatusSuspicious, models.StatusDuplicatePayment,
		models.StatusManualReview,
	},
	models.StatusWalletFullyPaid: {models.StatusQueued},
	models.StatusPaid:            {models.StatusQueued},
	models.StatusQueued:          {models.StatusProcessing},
	models.StatusProcessing: {
		models.StatusSuccess, models.StatusFailed, models.StatusInvalidUID,
		models.StatusManualReview, models.StatusQueued,
	},
	models.StatusFailed: {models.StatusQueued, models.StatusManualReview},
	models.StatusManualReview: {
		models.StatusPaid, models.StatusQueued, models.StatusSuspicious,
		models.StatusDuplicatePayment,
	},
	models.StatusSuspicious: {models.StatusQueued, models.StatusPaid},
	models.StatusInvalidUID: {models.StatusQueued, models.StatusPendingPayment},
}

func CanTransition(from, to string) bool {
	if IsTerminal(from) {
		return false
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionOrder is the single write path for automated status changes: a
// conditional UPDATE ... WHERE status IN (from). RowsAffected == 0 means the
// claim lost a race and the caller must not proceed.
func TransitionOrder(db *gorm.DB, orderID string, from []string, to string, set map[string]any) error {
	for _, f := range from {
		if !CanTransition(f, to) {
			return ErrStatusConflict
		}
	}

	if set == nil {
		set = map[string]any{}
	}
	set["status"] = to
	set["updated_at"] = time.Now().UTC()

	res := db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// ForceTransitionOrder applies a move outside the automated table: operator
// overrides and system completions with no delivery step. Still conditional on
// the expected statuses so two actors cannot double-apply.
func ForceTransitionOrder(db *gorm.DB, orderID string, from []string, to string, set map[string]any) error {
	if set == nil {
		set = map[string]any{}
	}
	set["status"] = to
	set["updated_at"] = time.Now().UTC()

	res := db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// EnqueueOrder moves a paid order into the automation queue. Wallet-load
// orders have nothing to deliver and complete on the spot.
func EnqueueOrder(db *gorm.DB, orderID string) error {
	var order models.Order
	if err := db.Where("id = ?", orderID).First(&order).Error; err != nil {
		return err
	}

	now := time.Now().UTC()

	if order.OrderType == models.OrderTypeWalletLoad {
		return ForceTransitionOrder(db, orderID,
			[]string{models.StatusPaid, models.StatusWalletFullyPaid},
			models.StatusSuccess,
			map[string]any{"completed_at": now})
	}

	return TransitionOrder(db, orderID,
		[]string{models.StatusPaid, models.StatusWalletFullyPaid},
		models.StatusQueued,
		map[string]any{"queued_at": now})
}
