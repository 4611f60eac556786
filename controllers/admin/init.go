package admin

import (
	"os"

	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var defaultPackages = []models.Package{
	{Type: models.PackageDiamond, Name: "25 Diamonds", Amount: 25, PricePaisa: 2500, SortOrder: 1},
	{Type: models.PackageDiamond, Name: "50 Diamonds", Amount: 50, PricePaisa: 4500, SortOrder: 2},
	{Type: models.PackageDiamond, Name: "115 Diamonds", Amount: 115, PricePaisa: 9900, SortOrder: 3},
	{Type: models.PackageDiamond, Name: "240 Diamonds", Amount: 240, PricePaisa: 19900, SortOrder: 4},
	{Type: models.PackageDiamond, Name: "610 Diamonds", Amount: 610, PricePaisa: 49900, SortOrder: 5},
	{Type: models.PackageMembership, Name: "Weekly Membership", Amount: 7, PricePaisa: 15900, SortOrder: 6},
	{Type: models.PackageMembership, Name: "Monthly Membership", Amount: 30, PricePaisa: 64900, SortOrder: 7},
	{Type: models.PackageEvoAccess, Name: "Evo Access 3D", Amount: 3, PricePaisa: 9900, SortOrder: 8},
}

// Init seeds the first admin account and a starter catalog. Safe to call
// twice: it refuses once an admin exists.
func Init(c *fiber.Ctx) error {
	var adminCount int64
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount > 0 {
		return helpers.JSONBadRequest(c, "ALREADY_INITIALIZED")
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "HASH_FAILED")
	}

	adminUser := models.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := database.DB.Create(&adminUser).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_ADMIN")
	}

	var pkgCount int64
	database.DB.Model(&models.Package{}).Count(&pkgCount)
	if pkgCount == 0 {
		for _, pkg := range defaultPackages {
			pkg.ID = uuid.New().String()
			pkg.Active = true
			if err := database.DB.Create(&pkg).Error; err != nil {
				return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_SEED_PACKAGES")
			}
		}
	}

	return helpers.JSONSuccess(c, "Initialized", fiber.Map{"admin_username": "admin"})
}
