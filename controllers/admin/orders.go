package admin

import (
	"time"

	"nexstore/controllers/orders"
	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"
	"nexstore/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func adminID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

func ListOrders(c *fiber.Ctx) error {
	q := database.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if orderType := c.Query("order_type"); orderType != "" {
		q = q.Where("order_type = ?", orderType)
	}
	if username := c.Query("username"); username != "" {
		q = q.Where("username = ?", username)
	}

	var list []models.Order
	if err := q.Order("created_at DESC").Limit(200).Find(&list).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}
	return helpers.JSONSuccess(c, "ok", renderOrders(list))
}

func renderOrders(list []models.Order) []fiber.Map {
	out := make([]fiber.Map, 0, len(list))
	for i := range list {
		out = append(out, orders.OrderJSON(&list[i]))
	}
	return out
}

func GetOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := database.DB.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}
	return helpers.JSONSuccess(c, "ok", orders.OrderJSON(&order))
}

type UpdateOrderRequest struct {
	PlayerUID *string `json:"player_uid"`
	Notes     *string `json:"notes"`
}

func UpdateOrder(c *fiber.Ctx) error {
	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}

	var order models.Order
	if err := database.DB.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}

	set := map[string]any{"updated_at": time.Now().UTC()}
	if req.PlayerUID != nil {
		set["player_uid"] = *req.PlayerUID
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if err := database.DB.Model(&order).Updates(set).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_ORDER")
	}

	services.LogAdminAction(adminID(c), "update_order", order.ID, "Edited order fields")
	return helpers.JSONSuccess(c, "Order updated", nil)
}

// MarkSuccess forces a terminal success: the operator confirmed delivery by
// hand, so the dispatcher is bypassed entirely.
func MarkSuccess(c *fiber.Ctx) error {
	var order models.Order
	if err := database.DB.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}
	if services.IsTerminal(order.Status) {
		return helpers.JSONBadRequest(c, "ORDER_ALREADY_TERMINAL")
	}

	if err := services.ForceTransitionOrder(database.DB, order.ID,
		[]string{order.Status}, models.StatusSuccess,
		map[string]any{
			"automation_state": "manual_success",
			"completed_at":     time.Now().UTC(),
		}); err != nil {
		return helpers.JSONBadRequest(c, "ORDER_STATUS_CHANGED_CONCURRENTLY")
	}

	services.LogAdminAction(adminID(c), "mark_success", order.ID, "Manually marked order as success")
	return helpers.JSONSuccess(c, "Order marked as successful", nil)
}

var retryableStatuses = []string{
	models.StatusFailed, models.StatusManualReview,
	models.StatusSuspicious, models.StatusInvalidUID,
}

// Retry requeues a stuck order. The automation state is reset; the retry
// count history is deliberately kept.
func Retry(c *fiber.Ctx) error {
	var order models.Order
	if err := database.DB.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}
	if order.OrderType != models.OrderTypeProductTopup {
		return helpers.JSONBadRequest(c, "CAN_ONLY_RETRY_PRODUCT_ORDERS")
	}

	if err := services.ForceTransitionOrder(database.DB, order.ID,
		retryableStatuses, models.StatusQueued,
		map[string]any{
			"automation_state":  "",
			"suspicious_reason": "",
			"queued_at":         time.Now().UTC(),
		}); err != nil {
		return helpers.JSONBadRequest(c, "ORDER_NOT_IN_RETRYABLE_STATUS")
	}

	services.LogAdminAction(adminID(c), "retry_order", order.ID, "Requeued for automation")
	return helpers.JSONSuccess(c, "Order queued for retry", nil)
}

// Refund reverses a successful order: everything the user put in goes back
// to the wallet. Admin-only escape hatch from a terminal state.
func Refund(c *fiber.Ctx) error {
	var order models.Order
	if err := database.DB.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}
	if order.Status != models.StatusSuccess {
		return helpers.JSONBadRequest(c, "CAN_ONLY_REFUND_SUCCESSFUL_ORDERS")
	}

	refundPaisa := order.WalletUsedPaisa + order.PaymentReceivedPaisa - order.OverpaymentPaisa
	if refundPaisa < 0 {
		refundPaisa = 0
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := services.ForceTransitionOrder(tx, order.ID,
			[]string{models.StatusSuccess}, models.StatusRefunded, nil); err != nil {
			return err
		}
		if refundPaisa > 0 {
			_, err := services.CreditWallet(tx, order.UserID, refundPaisa, models.TrxRefund,
				order.ID, "", "Refund for order "+order.ShortID())
			return err
		}
		return nil
	})
	if err != nil {
		return helpers.JSONBadRequest(c, "ORDER_STATUS_CHANGED_CONCURRENTLY")
	}

	services.LogAdminAction(adminID(c), "refund_order", order.ID, "Refunded to wallet")
	return helpers.JSONSuccess(c, "Order refunded to wallet", fiber.Map{
		"refunded": helpers.PaisaToRupees(refundPaisa),
	})
}

// Process triggers automation for one order right now.
func Process(c *fiber.Ctx) error {
	var order models.Order
	if err := database.DB.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}
	if order.OrderType != models.OrderTypeProductTopup {
		return helpers.JSONBadRequest(c, "CAN_ONLY_PROCESS_PRODUCT_ORDERS")
	}
	if order.Status == models.StatusPaid || order.Status == models.StatusWalletFullyPaid {
		_ = services.EnqueueOrder(database.DB, order.ID)
	} else if order.Status != models.StatusQueued {
		return helpers.JSONBadRequest(c, "ORDER_MUST_BE_QUEUED_OR_PAID")
	}

	go services.ProcessAutomationOrder(order.ID)

	services.LogAdminAction(adminID(c), "trigger_automation", order.ID, "Manually triggered automation")
	return helpers.JSONSuccess(c, "Automation started", fiber.Map{"order_id": order.ID})
}

func ProcessAll(c *fiber.Ctx) error {
	go services.ProcessAllQueued()
	services.LogAdminAction(adminID(c), "process_all_queued", "", "Drained automation queue")
	return helpers.JSONSuccess(c, "Processing all queued orders", nil)
}

func AutomationQueue(c *fiber.Ctx) error {
	var list []models.Order
	if err := database.DB.Where(
		"order_type = ? AND status IN ?",
		models.OrderTypeProductTopup,
		[]string{models.StatusQueued, models.StatusProcessing},
	).Order("queued_at ASC").Find(&list).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}
	return helpers.JSONSuccess(c, "ok", renderOrders(list))
}

func ReviewQueue(c *fiber.Ctx) error {
	var list []models.Order
	if err := database.DB.Where("status IN ?", []string{
		models.StatusManualReview, models.StatusSuspicious,
		models.StatusDuplicatePayment, models.StatusInvalidUID, models.StatusFailed,
	}).Order("updated_at DESC").Limit(200).Find(&list).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}
	return helpers.JSONSuccess(c, "ok", renderOrders(list))
}
