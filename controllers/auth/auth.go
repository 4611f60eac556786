package auth

import (
	"errors"

	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func tokenResponse(c *fiber.Ctx, user *models.User) error {
	token, err := helpers.CreateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "TOKEN_ISSUE_FAILED")
	}
	return helpers.JSONSuccess(c, "ok", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user_type":    user.Role,
		"username":     user.Username,
	})
}

func Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_SIGNUP_FIELDS")
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return helpers.JSONBadRequest(c, "USERNAME_TAKEN")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "HASH_FAILED")
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_USER")
	}

	return tokenResponse(c, &user)
}

func login(c *fiber.Ctx, role string) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "USERNAME_AND_PASSWORD_REQUIRED")
	}

	var user models.User
	if err := database.DB.Where("username = ? AND role = ?", req.Username, role).
		First(&user).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return helpers.JSONError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}
	if user.Blocked {
		return helpers.JSONError(c, fiber.StatusForbidden, "ACCOUNT_BLOCKED")
	}

	return tokenResponse(c, &user)
}

func Login(c *fiber.Ctx) error {
	return login(c, models.RoleUser)
}

func AdminLogin(c *fiber.Ctx) error {
	return login(c, models.RoleAdmin)
}

// ResetPassword verifies the registered phone before rewriting the hash.
func ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_RESET_FIELDS")
	}

	var user models.User
	if err := database.DB.Where("username = ? AND phone = ?", req.Username, req.Phone).
		First(&user).Error; err != nil {
		return helpers.JSONNotFound(c, "USER_NOT_FOUND")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "HASH_FAILED")
	}
	if err := database.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_PASSWORD")
	}

	return helpers.JSONSuccess(c, "Password updated", nil)
}
