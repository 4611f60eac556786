package admin

import (
	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"
	"nexstore/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GarenaAccountRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Pin      string `json:"pin" validate:"required"`
	Active   *bool  `json:"active"`
	Notes    string `json:"notes"`
}

type GarenaAccountUpdateRequest struct {
	Password *string `json:"password"`
	Pin      *string `json:"pin"`
	Active   *bool   `json:"active"`
	Notes    *string `json:"notes"`
}

func ListGarenaAccounts(c *fiber.Ctx) error {
	var accounts []models.GarenaAccount
	if err := database.DB.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}
	return helpers.JSONSuccess(c, "ok", accounts)
}

func CreateGarenaAccount(c *fiber.Ctx) error {
	var req GarenaAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_ACCOUNT_FIELDS")
	}

	password, err := helpers.EncryptCredential(req.Password)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "ENCRYPT_FAILED")
	}
	pin, err := helpers.EncryptCredential(req.Pin)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "ENCRYPT_FAILED")
	}

	account := models.GarenaAccount{
		ID:       uuid.New().String(),
		Email:    req.Email,
		Password: password,
		Pin:      pin,
		Active:   true,
		Notes:    req.Notes,
	}
	if req.Active != nil {
		account.Active = *req.Active
	}
	if err := database.DB.Create(&account).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_ACCOUNT")
	}

	services.LogAdminAction(adminID(c), "create_garena_account", account.ID, "Added automation account "+req.Email)
	return helpers.JSONSuccess(c, "Account created", fiber.Map{"id": account.ID})
}

func UpdateGarenaAccount(c *fiber.Ctx) error {
	var req GarenaAccountUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}

	var account models.GarenaAccount
	if err := database.DB.Where("id = ?", c.Params("id")).First(&account).Error; err != nil {
		return helpers.JSONNotFound(c, "ACCOUNT_NOT_FOUND")
	}

	set := map[string]any{}
	if req.Password != nil {
		enc, err := helpers.EncryptCredential(*req.Password)
		if err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "ENCRYPT_FAILED")
		}
		set["password"] = enc
	}
	if req.Pin != nil {
		enc, err := helpers.EncryptCredential(*req.Pin)
		if err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "ENCRYPT_FAILED")
		}
		set["pin"] = enc
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	if len(set) > 0 {
		if err := database.DB.Model(&account).Updates(set).Error; err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_ACCOUNT")
		}
	}

	services.LogAdminAction(adminID(c), "update_garena_account", account.ID, "Edited automation account")
	return helpers.JSONSuccess(c, "Account updated", nil)
}

func DeleteGarenaAccount(c *fiber.Ctx) error {
	res := database.DB.Where("id = ?", c.Params("id")).Delete(&models.GarenaAccount{})
	if res.Error != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_DELETE_ACCOUNT")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONNotFound(c, "ACCOUNT_NOT_FOUND")
	}

	services.LogAdminAction(adminID(c), "delete_garena_account", c.Params("id"), "Removed automation account")
	return helpers.JSONSuccess(c, "Account deleted", nil)
}
