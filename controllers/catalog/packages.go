package catalog

import (
	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"

	"github.com/gofiber/fiber/v2"
)

func List(c *fiber.Ctx) error {
	var packages []models.Package
	if err := database.DB.Where("active = true").
		Order("sort_order ASC").Find(&packages).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}

	out := make([]fiber.Map, 0, len(packages))
	for i := range packages {
		p := &packages[i]
		out = append(out, fiber.Map{
			"id":     p.ID,
			"type":   p.Type,
			"name":   p.Name,
			"amount": p.Amount,
			"price":  helpers.PaisaToRupees(p.PricePaisa),
		})
	}
	return helpers.JSONSuccess(c, "ok", out)
}
