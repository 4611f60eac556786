package admin

import (
	"time"

	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"

	"github.com/gofiber/fiber/v2"
)

func Dashboard(c *fiber.Ctx) error {
	db := database.DB

	var totalOrders, pendingOrders, queuedOrders, reviewOrders, unmatchedSms int64
	db.Model(&models.Order{}).Count(&totalOrders)
	db.Model(&models.Order{}).Where("status IN ?", []string{
		models.StatusPendingPayment, models.StatusWalletPartialPaid,
	}).Count(&pendingOrders)
	db.Model(&models.Order{}).Where("status IN ?", []string{
		models.StatusQueued, models.StatusProcessing,
	}).Count(&queuedOrders)
	db.Model(&models.Order{}).Where("status IN ?", []string{
		models.StatusManualReview, models.StatusSuspicious,
		models.StatusDuplicatePayment, models.StatusInvalidUID, models.StatusFailed,
	}).Count(&reviewOrders)
	db.Model(&models.SmsMessage{}).Where("used = false").Count(&unmatchedSms)

	since := time.Now().UTC().Truncate(24 * time.Hour)
	var todayRevenuePaisa int64
	db.Model(&models.Order{}).
		Where("status = ? AND completed_at >= ?", models.StatusSuccess, since).
		Select("COALESCE(SUM(locked_price_paisa), 0)").Scan(&todayRevenuePaisa)

	return helpers.JSONSuccess(c, "ok", fiber.Map{
		"total_orders":   totalOrders,
		"pending_orders": pendingOrders,
		"queued_orders":  queuedOrders,
		"review_orders":  reviewOrders,
		"unmatched_sms":  unmatchedSms,
		"today_revenue":  helpers.PaisaToRupees(todayRevenuePaisa),
	})
}

func ListActions(c *fiber.Ctx) error {
	var actions []models.AdminAction
	if err := database.DB.Order("created_at DESC").Limit(200).Find(&actions).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}
	return helpers.JSONSuccess(c, "ok", actions)
}
