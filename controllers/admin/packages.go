package admin

import (
	"fmt"

	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"
	"nexstore/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PackageRequest struct {
	Type        string  `json:"type" validate:"required,oneof=diamond membership evo_access"`
	Name        string  `json:"name" validate:"required"`
	Amount      int     `json:"amount" validate:"gte=0"`
	PriceRupees float64 `json:"price" validate:"required,gt=0"`
	Active      *bool   `json:"active"`
	SortOrder   int     `json:"sort_order"`
}

func ListPackages(c *fiber.Ctx) error {
	var packages []models.Package
	if err := database.DB.Order("sort_order ASC").Find(&packages).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}

	out := make([]fiber.Map, 0, len(packages))
	for i := range packages {
		p := &packages[i]
		out = append(out, fiber.Map{
			"id":         p.ID,
			"type":       p.Type,
			"name":       p.Name,
			"amount":     p.Amount,
			"price":      helpers.PaisaToRupees(p.PricePaisa),
			"active":     p.Active,
			"sort_order": p.SortOrder,
		})
	}
	return helpers.JSONSuccess(c, "ok", out)
}

func CreatePackage(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_PACKAGE_FIELDS")
	}

	pkg := models.Package{
		ID:         uuid.New().String(),
		Type:       req.Type,
		Name:       req.Name,
		Amount:     req.Amount,
		PricePaisa: helpers.RupeesToPaisa(req.PriceRupees),
		Active:     true,
		SortOrder:  req.SortOrder,
	}
	if req.Active != nil {
		pkg.Active = *req.Active
	}
	if err := database.DB.Create(&pkg).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_PACKAGE")
	}

	services.LogAdminAction(adminID(c), "create_package", pkg.ID,
		fmt.Sprintf("Created %s at ₹%.2f", pkg.Name, req.PriceRupees))
	return helpers.JSONSuccess(c, "Package created", fiber.Map{"id": pkg.ID})
}

// UpdatePackage edits the live catalog. Existing orders are untouched: they
// carry their own locked price.
func UpdatePackage(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_PACKAGE_FIELDS")
	}

	var pkg models.Package
	if err := database.DB.Where("id = ?", c.Params("id")).First(&pkg).Error; err != nil {
		return helpers.JSONNotFound(c, "PACKAGE_NOT_FOUND")
	}

	set := map[string]any{
		"type":        req.Type,
		"name":        req.Name,
		"amount":      req.Amount,
		"price_paisa": helpers.RupeesToPaisa(req.PriceRupees),
		"sort_order":  req.SortOrder,
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}
	if err := database.DB.Model(&pkg).Updates(set).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_PACKAGE")
	}

	services.LogAdminAction(adminID(c), "update_package", pkg.ID, "Edited package")
	return helpers.JSONSuccess(c, "Package updated", nil)
}

func DeletePackage(c *fiber.Ctx) error {
	res := database.DB.Where("id = ?", c.Params("id")).Delete(&models.Package{})
	if res.Error != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_DELETE_PACKAGE")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONNotFound(c, "PACKAGE_NOT_FOUND")
	}

	services.LogAdminAction(adminID(c), "delete_package", c.Params("id"), "Deleted package")
	return helpers.JSONSuccess(c, "Package deleted", nil)
}
