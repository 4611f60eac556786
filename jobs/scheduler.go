package jobs

import (
	"log"
	"time"

	"nexstore/config"
	"nexstore/database"
	"nexstore/models"
	"nexstore/services"

	"gorm.io/gorm"
)

// StartScheduler launches the periodic maintenance loops: order expiry,
// suspicious-SMS flagging, stuck-processing recovery, and the queue drain.
func StartScheduler() {
	cfg := config.Load()

	tickerExpire := time.NewTicker(cfg.ExpiryInterval)
	go func() {
		for {
			<-tickerExpire.C
			if err := ExpireOldOrders(); err != nil {
				log.Printf("❌ error expiring orders: %v", err)
			}
		}
	}()

	tickerSuspicious := time.NewTicker(cfg.SuspiciousFlagInterval)
	go func() {
		for {
			<-tickerSuspicious.C
			if err := FlagSuspiciousSms(); err != nil {
				log.Printf("❌ error flagging sms: %v", err)
			}
		}
	}()

	tickerStuck := time.NewTicker(cfg.StuckProcessingInterval)
	go func() {
		for {
			<-tickerStuck.C
			if err := ResetStuckProcessing(); err != nil {
				log.Printf("❌ error resetting stuck orders: %v", err)
			}
		}
	}()

	tickerDispatch := time.NewTicker(cfg.DispatchInterval)
	go func() {
		for {
			<-tickerDispatch.C
			services.ProcessAllQueued()
		}
	}()
}

// ExpireOldOrders times out unpaid orders and returns any wallet portion.
// Expiry is one-way: an expired order never comes back automatically.
func ExpireOldOrders() error {
	cfg := config.Load()
	threshold := time.Now().UTC().Add(-cfg.OrderExpiry)

	var stale []models.Order
	if err := database.DB.Where(
		"status IN ? AND created_at < ?",
		[]string{models.StatusPendingPayment, models.StatusWalletPartialPaid},
		threshold,
	).Find(&stale).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	expired := 0
	for i := range stale {
		order := &stale[i]
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := services.TransitionOrder(tx, order.ID,
				[]string{models.StatusPendingPayment, models.StatusWalletPartialPaid},
				models.StatusExpired,
				map[string]any{"expired_at": now}); err != nil {
				return err
			}
			if order.WalletUsedPaisa > 0 {
				_, err := services.CreditWallet(tx, order.UserID, order.WalletUsedPaisa,
					models.TrxRefund, order.ID, "", "Refund for expired order "+order.ShortID())
				return err
			}
			return nil
		})
		if err == nil {
			expired++
		}
	}

	if expired > 0 {
		log.Printf("✅ expired %d orders older than %s", expired, cfg.OrderExpiry)
	}
	return nil
}

// FlagSuspiciousSms marks payments that sat unmatched too long; money that
// arrived with no order attached needs operator eyes.
func FlagSuspiciousSms() error {
	cfg := config.Load()
	threshold := time.Now().UTC().Add(-cfg.SmsSuspiciousAfter)
	now := time.Now().UTC()

	res := database.DB.Model(&models.SmsMessage{}).
		Where("used = false AND suspicious = false AND parsed_at < ?", threshold).
		Updates(map[string]any{
			"suspicious":        true,
			"suspicious_at":     now,
			"suspicious_reason": "Unmatched for over 1 hour",
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("⚠️  flagged %d unmatched SMS as suspicious", res.RowsAffected)
	}
	return nil
}

// ResetStuckProcessing requeues orders whose delivery attempt never reported
// back, so a crashed worker cannot strand them in processing forever.
func ResetStuckProcessing() error {
	cfg := config.Load()
	threshold := time.Now().UTC().Add(-cfg.StuckProcessingAfter)

	res := database.DB.Model(&models.Order{}).
		Where("status = ? AND processing_started_at < ?", models.StatusProcessing, threshold).
		Updates(map[string]any{
			"status":           models.StatusQueued,
			"automation_state": "reset_from_stuck",
			"retry_count":      gorm.Expr("retry_count + 1"),
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("⚠️  reset %d stuck orders from processing to queued", res.RowsAffected)
	}
	return nil
}
