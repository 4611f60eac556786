package helpers

import (
	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

func JSONBadRequest(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusBadRequest, message)
}

func JSONNotFound(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusNotFound, message)
}
