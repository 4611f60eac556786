package admin

import (
	"fmt"

	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"
	"nexstore/services"

	"github.com/gofiber/fiber/v2"
)

func ListSms(c *fiber.Ctx) error {
	q := database.DB.Model(&models.SmsMessage{})
	if c.Query("unmatched") == "true" {
		q = q.Where("used = false")
	}

	var list []models.SmsMessage
	if err := q.Order("parsed_at DESC").Limit(200).Find(&list).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}
	return helpers.JSONSuccess(c, "ok", list)
}

type InputSmsRequest struct {
	RawMessage string `json:"raw_message" validate:"required"`
}

func parsedJSON(sms *models.SmsMessage) fiber.Map {
	return fiber.Map{
		"amount":      helpers.PaisaToRupees(sms.AmountPaisa),
		"last3digits": sms.Last3Digits,
		"rrn":         sms.RRN,
		"method":      sms.Method,
		"remark":      sms.Remark,
	}
}

// InputSms runs an operator-pasted message through the same pipeline as the
// phone app and reports the outcome in full.
func InputSms(c *fiber.Ctx) error {
	var req InputSmsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "RAW_MESSAGE_REQUIRED")
	}

	result, err := services.IngestSms(req.RawMessage, adminID(c))
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_INGEST_SMS")
	}

	resp := fiber.Map{
		"parsed":        parsedJSON(result.Sms),
		"matched":       result.Matched,
		"duplicate":     result.Duplicate,
		"duplicate_rrn": result.DuplicateRRN,
		"sms_id":        result.Sms.ID,
	}
	if result.Matched {
		resp["order_id"] = result.Order.ID
		resp["overpayment_credited"] = helpers.PaisaToRupees(result.OverpaymentPaisa)
		services.LogAdminAction(adminID(c), "input_sms", result.Order.ID,
			fmt.Sprintf("Matched to order %s, overpayment ₹%.2f",
				result.Order.ShortID(), helpers.PaisaToRupees(result.OverpaymentPaisa)))
	}
	return helpers.JSONSuccess(c, result.Message, resp)
}

// MatchSms force-binds one stored SMS to one order. The human asserts the
// pairing, so mismatched amounts are allowed; the overpayment policy still
// applies to the difference.
func MatchSms(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	if orderID == "" {
		return helpers.JSONBadRequest(c, "ORDER_ID_REQUIRED")
	}

	var sms models.SmsMessage
	if err := database.DB.Where("id = ?", c.Params("smsId")).First(&sms).Error; err != nil {
		return helpers.JSONNotFound(c, "SMS_NOT_FOUND")
	}
	if sms.Used {
		return helpers.JSONBadRequest(c, "SMS_ALREADY_USED")
	}

	var order models.Order
	if err := database.DB.Where("id = ?", orderID).First(&order).Error; err != nil {
		return helpers.JSONNotFound(c, "ORDER_NOT_FOUND")
	}

	rrn := ""
	if sms.RRN != nil {
		rrn = *sms.RRN
	}
	result, err := services.ProcessPayment(database.DB, &order, sms.AmountPaisa, rrn,
		sms.RawMessage, sms.Fingerprint, sms.ID)
	if err != nil {
		return helpers.JSONBadRequest(c, "FAILED_TO_PROCESS_PAYMENT")
	}
	if err := services.MarkSmsUsed(database.DB, sms.ID, order.ID); err != nil {
		return helpers.JSONBadRequest(c, "SMS_ALREADY_USED")
	}
	if result.Status == models.StatusPaid {
		_ = services.EnqueueOrder(database.DB, order.ID)
	}

	services.LogAdminAction(adminID(c), "manual_match_sms", order.ID,
		fmt.Sprintf("Manually matched SMS %s, overpayment ₹%.2f",
			sms.ID, helpers.PaisaToRupees(result.OverpaymentPaisa)))

	return helpers.JSONSuccess(c, "SMS matched to order "+order.ShortID(), fiber.Map{
		"status":               result.Status,
		"overpayment_credited": helpers.PaisaToRupees(result.OverpaymentPaisa),
	})
}
