package admin

import (
	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"
	"nexstore/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type UpdateUserRequest struct {
	Blocked  *bool   `json:"blocked"`
	Password *string `json:"password"`
}

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Limit(500).Find(&users).Error; err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "DB_ERROR")
	}

	out := make([]fiber.Map, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, fiber.Map{
			"id":             u.ID,
			"username":       u.Username,
			"phone":          u.Phone,
			"role":           u.Role,
			"wallet_balance": helpers.PaisaToRupees(u.WalletBalancePaisa),
			"blocked":        u.Blocked,
			"created_at":     u.CreatedAt,
		})
	}
	return helpers.JSONSuccess(c, "ok", out)
}

func CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_USER_FIELDS")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "HASH_FAILED")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return helpers.JSONBadRequest(c, "USERNAME_TAKEN")
	}

	services.LogAdminAction(adminID(c), "create_user", user.ID, "Created "+role+" "+req.Username)
	return helpers.JSONSuccess(c, "User created", fiber.Map{"id": user.ID})
}

func UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONBadRequest(c, "INVALID_JSON")
	}

	var user models.User
	if err := database.DB.Where("id = ?", c.Params("id")).First(&user).Error; err != nil {
		return helpers.JSONNotFound(c, "USER_NOT_FOUND")
	}

	set := map[string]any{}
	if req.Blocked != nil {
		set["blocked"] = *req.Blocked
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "HASH_FAILED")
		}
		set["password_hash"] = string(hash)
	}

	if len(set) > 0 {
		if err := database.DB.Model(&user).Updates(set).Error; err != nil {
			return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_USER")
		}
	}

	services.LogAdminAction(adminID(c), "update_user", user.ID, "Edited user account")
	return helpers.JSONSuccess(c, "User updated", nil)
}

func DeleteUser(c *fiber.Ctx) error {
	res := database.DB.Where("id = ? AND role = ?", c.Params("id"), models.RoleUser).
		Delete(&models.User{})
	if res.Error != nil {
		return helpers.JSONError(c, fiber.StatusInternalServerError, "FAILED_TO_DELETE_USER")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONNotFound(c, "USER_NOT_FOUND")
	}

	services.LogAdminAction(adminID(c), "delete_user", c.Params("id"), "Deleted user account")
	return helpers.JSONSuccess(c, "User deleted", nil)
}
