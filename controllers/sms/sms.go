package sms

import (
	"nexstore/helpers"
	"nexstore/services"

	"github.com/gofiber/fiber/v2"
)

type ReceiveRequest struct {
	RawMessage string `json:"raw_message" validate:"required"`
}

// Receive ingests a forwarded bank SMS from the phone app.
func Receive(c *fiber.Ctx) error {
	var req ReceiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "RAW_MESSAGE_REQUIRED")
	}

	result, err := services.IngestSms(req.RawMessage, "")
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_INGEST_SMS")
	}

	resp := fiber.Map{
		"matched":   result.Matched,
		"duplicate": result.Duplicate || result.DuplicateRRN,
	}
	if result.Order != nil {
		resp["order_id"] = result.Order.ID
	}
	return helpers.JSONSuccess(c, result.Message, resp)
}
