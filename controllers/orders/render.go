package orders

import (
	"nexstore/helpers"
	"nexstore/models"

	"github.com/gofiber/fiber/v2"
)

// OrderJSON renders an order with rupee figures alongside the raw paisa
// columns; polling clients read status plus timestamps only.
func OrderJSON(o *models.Order) fiber.Map {
	m := fiber.Map{
		"id":                    o.ID,
		"order_type":            o.OrderType,
		"user_id":               o.UserID,
		"username":              o.Username,
		"player_uid":            o.PlayerUID,
		"server":                o.Server,
		"package_id":            o.PackageID,
		"package_name":          o.PackageName,
		"package_type":          o.PackageType,
		"amount":                o.Amount,
		"locked_price":          helpers.PaisaToRupees(o.LockedPricePaisa),
		"wallet_used":           helpers.PaisaToRupees(o.WalletUsedPaisa),
		"payment_required":      helpers.PaisaToRupees(o.PaymentRequiredPaisa),
		"payment_amount":        helpers.PaisaToRupees(o.PaymentAmountPaisa),
		"payment_received":      helpers.PaisaToRupees(o.PaymentReceivedPaisa),
		"overpayment_credited":  helpers.PaisaToRupees(o.OverpaymentPaisa),
		"payment_last3digits":   o.PaymentLast3Digits,
		"payment_method":        o.PaymentMethod,
		"payment_rrn":           o.PaymentRRN,
		"status":                o.Status,
		"automation_state":      o.AutomationState,
		"automation_history":    o.AutomationHistory,
		"retry_count":           o.RetryCount,
		"suspicious_reason":     o.SuspiciousReason,
		"notes":                 o.Notes,
		"created_at":            o.CreatedAt,
		"updated_at":            o.UpdatedAt,
		"queued_at":             o.QueuedAt,
		"processing_started_at": o.ProcessingStartedAt,
		"completed_at":          o.CompletedAt,
		"expired_at":            o.ExpiredAt,
	}
	if o.OrderType == models.OrderTypeWalletLoad {
		m["load_amount"] = helpers.PaisaToRupees(o.LoadAmountPaisa)
	}
	return m
}
