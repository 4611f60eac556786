package orders

import (
	"errors"
	"time"

	"nexstore/config"
	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"
	"nexstore/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	PackageID string `json:"package_id" validate:"required"`
	PlayerUID string `json:"player_uid" validate:"required,numeric,min=8,max=32"`
}

type WalletLoadRequest struct {
	AmountRupees float64 `json:"amount" validate:"required,gt=0"`
}

type UpdateUIDRequest struct {
	PlayerUID string `json:"player_uid" validate:"required,numeric,min=8,max=32"`
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, _ := c.Locals("user_id").(string)
	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func Create(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "PLAYER_UID_MUST_BE_AT_LEAST_8_DIGITS")
	}

	user, err := currentUser(c)
	if err != nil {
		return helpers.JSONNotFound(c, "USER_NOT_FOUND")
	}
	if user.Blocked {
		return helpers.JSONError(c, fiber.StatusForbidden, "ACCOUNT_BLOCKED")
	}

	var pkg models.Package
	if err := database.DB.Where("id = ? AND active = true", req.PackageID).
		First(&pkg).Error; err != nil {
		return helpers.JSONNotFound(c, "PACKAGE_NOT_FOUND_OR_INACTIVE")
	}

	order, err := services.CreateProductOrder(user, &pkg, req.PlayerUID)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_ORDER")
	}

	return helpers.JSONSuccess(c, "Order created", fiber.Map{
		"order_id":         order.ID,
		"status":           order.Status,
		"payment_amount":   helpers.PaisaToRupees(order.PaymentAmountPaisa),
		"payment_required": helpers.PaisaToRupees(order.PaymentRequiredPaisa),
		"wallet_used":      helpers.PaisaToRupees(order.WalletUsedPaisa),
	})
}

func WalletLoad(c *fiber.Ctx) error {
	var req WalletLoadRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "VALID_AMOUNT_REQUIRED")
	}

	loadPaisa := helpers.RupeesToPaisa(req.AmountRupees)
	if loadPaisa < config.Load().MinWalletLoadPaisa {
		return helpers.JSONBadRequest(c, "MINIMUM_WALLET_LOAD_IS_10")
	}

	user, err := currentUser(c)
	if err != nil {
		return helpers.JSONNotFound(c, "USER_NOT_FOUND")
	}
	if user.Blocked {
		return helpers.JSONError(c, fiber.StatusForbidden, "ACCOUNT_BLOCKED")
	}

	order, err := services.CreateWalletLoadOrder(user, loadPaisa)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_ORDER")
	}

	return helpers.JSONSuccess(c, "Wallet load order created", fiber.Map{
		"order_id":       order.ID,
		"status":         order.Status,
		"load_amount":    req.AmountRupees,
		"payment_amount": helpers.PaisaToRupees(order.PaymentAmountPaisa),
	})
}

// Get serves the 5-second status poll. Cheap, idempotent, no side effects.
func Get(c *fiber.Ctx) error {
	var order models.Order
	if err := database.DB.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}

	if c.Locals("role") == models.RoleUser && order.UserID != c.Locals("user_id") {
		return helpers.JSONError(c, fiber.StatusForbidden, "ACCESS_DENIED")
	}

	return helpers.JSONSuccess(c, "ok", OrderJSON(&order))
}

// statusAfterUIDFix decides where a UID correction lands the order. Only a
// rejected or not-yet-paid order may be touched.
func statusAfterUIDFix(status string) (string, bool) {
	switch status {
	case models.StatusInvalidUID, models.StatusPendingPayment:
		return models.StatusPendingPayment, true
	default:
		return "", false
	}
}

// UpdateUID lets a user fix a rejected player UID and requeue validation.
func UpdateUID(c *fiber.Ctx) error {
	var req UpdateUIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "PLAYER_UID_MUST_BE_AT_LEAST_8_DIGITS")
	}

	var order models.Order
	if err := database.DB.Where("id = ?", c.Params("id")).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}
	if order.UserID != c.Locals("user_id") {
		return helpers.JSONError(c, fiber.StatusForbidden, "ACCESS_DENIED")
	}

	newStatus, ok := statusAfterUIDFix(order.Status)
	if !ok {
		return helpers.JSONBadRequest(c, "CANNOT_UPDATE_UID_FOR_THIS_STATUS")
	}

	// Conditional on the status we read, so a payment settling concurrently
	// cannot be overwritten back to pending.
	res := database.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(map[string]any{
			"player_uid": req.PlayerUID,
			"status":     newStatus,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_ORDER")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONBadRequest(c, "ORDER_STATUS_CHANGED_CONCURRENTLY")
	}

	return helpers.JSONSuccess(c, "UID updated successfully", fiber.Map{"new_status": newStatus})
}

type VerifyPaymentRequest struct {
	OrderID           string  `json:"order_id" validate:"required"`
	Last3Digits       string  `json:"last_3_digits" validate:"required,numeric,len=3"`
	PaymentMethod     string  `json:"payment_method"`
	Remark            string  `json:"remark"`
	SentAmountRupees  float64 `json:"sent_amount" validate:"required,gt=0"`
	PaymentScreenshot string  `json:"payment_screenshot"`
}

// VerifyPayment takes the user's asserted payment details as a matching hint:
// it binds the digits to the order and sweeps stored SMS events for a fit.
func VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_PAYMENT_DETAILS")
	}

	var order models.Order
	if err := database.DB.Where("id = ?", req.OrderID).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}
	if order.UserID != c.Locals("user_id") {
		return helpers.JSONError(c, fiber.StatusForbidden, "ACCESS_DENIED")
	}

	switch order.Status {
	case models.StatusPendingPayment, models.StatusWalletPartialPaid, models.StatusManualReview:
	default:
		return helpers.JSONBadRequest(c, "CANNOT_VERIFY_PAYMENT_FOR_STATUS_"+order.Status)
	}

	if err := database.DB.Model(&order).Updates(map[string]any{
		"payment_last3digits": req.Last3Digits,
		"payment_method":      req.PaymentMethod,
		"payment_remark":      req.Remark,
		"payment_screenshot":  req.PaymentScreenshot,
		"updated_at":          time.Now().UTC(),
	}).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_ORDER")
	}
	order.PaymentLast3Digits = req.Last3Digits

	sentPaisa := helpers.RupeesToPaisa(req.SentAmountRupees)

	// Newest SMS covering the ask, else exact the amount the user says they sent.
	var sms models.SmsMessage
	err := database.DB.Where(
		"amount_paisa >= ? AND last3digits = ? AND used = false AND parse_failed = false",
		order.PaymentRequiredPaisa, req.Last3Digits,
	).Order("parsed_at DESC").First(&sms).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = database.DB.Where(
			"amount_paisa = ? AND last3digits = ? AND used = false AND parse_failed = false",
			sentPaisa, req.Last3Digits,
		).First(&sms).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = services.TransitionOrder(database.DB, order.ID,
			[]string{order.Status}, models.StatusManualReview, nil)
		return helpers.JSONSuccess(c, "We're verifying your payment. This usually takes a few minutes.",
			fiber.Map{"status": models.StatusManualReview})
	}
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}

	rrn := ""
	if sms.RRN != nil {
		rrn = *sms.RRN
	}

	// Double-spend guard: neither the reference nor the exact message may
	// already back another order.
	var conflicts []models.Order
	q := database.DB.Where("sms_fingerprint = ?", sms.Fingerprint)
	if rrn != "" {
		q = database.DB.Where("payment_rrn = ? OR sms_fingerprint = ?", rrn, sms.Fingerprint)
	}
	if err := q.Limit(5).Find(&conflicts).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}
	if services.ReferenceConflict(conflicts, order.ID, rrn, sms.Fingerprint) {
		_ = services.TransitionOrder(database.DB, order.ID,
			[]string{order.Status}, models.StatusDuplicatePayment, nil)
		return helpers.JSONSuccess(c, "This payment was already used for another order",
			fiber.Map{"status": models.StatusDuplicatePayment})
	}

	result, err := services.ProcessPayment(database.DB, &order, sms.AmountPaisa, rrn,
		sms.RawMessage, sms.Fingerprint, sms.ID)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_PROCESS_PAYMENT")
	}
	if err := services.MarkSmsUsed(database.DB, sms.ID, order.ID); err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_PROCESS_PAYMENT")
	}
	if result.Status == models.StatusPaid {
		_ = services.EnqueueOrder(database.DB, order.ID)
	}

	if result.OverpaymentPaisa > 0 {
		return helpers.JSONSuccess(c, "Payment verified! Extra amount was credited to your wallet.", fiber.Map{
			"status":               result.Status,
			"overpayment_credited": helpers.PaisaToRupees(result.OverpaymentPaisa),
		})
	}
	return helpers.JSONSuccess(c, "Payment verified! Your order is being processed.",
		fiber.Map{"status": result.Status})
}
