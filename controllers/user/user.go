package user

import (
	"nexstore/controllers/orders"
	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"

	"github.com/gofiber/fiber/v2"
)

func Profile(c *fiber.Ctx) error {
	var u models.User
	if err := database.DB.Where("id = ?", c.Locals("user_id")).First(&u).Error; err != nil {
		return helpers.JSONNotFound(c, "USER_NOT_FOUND")
	}
	return helpers.JSONSuccess(c, "ok", fiber.Map{
		"id":             u.ID,
		"username":       u.Username,
		"phone":          u.Phone,
		"wallet_balance": helpers.PaisaToRupees(u.WalletBalancePaisa),
		"blocked":        u.Blocked,
		"created_at":     u.CreatedAt,
	})
}

// Wallet returns the cached balance plus the ledger that backs it.
func Wallet(c *fiber.Ctx) error {
	var u models.User
	if err := database.DB.Where("id = ?", c.Locals("user_id")).First(&u).Error; err != nil {
		return helpers.JSONNotFound(c, "USER_NOT_FOUND")
	}

	var entries []models.WalletTransaction
	if err := database.DB.Where("user_id = ?", u.ID).
		Order("created_at DESC").Limit(100).Find(&entries).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}

	history := make([]fiber.Map, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		history = append(history, fiber.Map{
			"id":            e.ID,
			"type":          e.Type,
			"amount":        helpers.PaisaToRupees(e.AmountPaisa),
			"balance_after": helpers.PaisaToRupees(e.BalanceAfterPaisa),
			"order_id":      e.OrderID,
			"description":   e.Description,
			"created_at":    e.CreatedAt,
		})
	}

	return helpers.JSONSuccess(c, "ok", fiber.Map{
		"balance":      helpers.PaisaToRupees(u.WalletBalancePaisa),
		"transactions": history,
	})
}

func Orders(c *fiber.Ctx) error {
	var list []models.Order
	if err := database.DB.Where("user_id = ?", c.Locals("user_id")).
		Order("created_at DESC").Limit(100).Find(&list).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}

	out := make([]fiber.Map, 0, len(list))
	for i := range list {
		out = append(out, orders.OrderJSON(&list[i]))
	}
	return helpers.JSONSuccess(c, "ok", out)
}
