package admin

import (
	"errors"
	"fmt"
	"strings"

	"nexstore/config"
	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"
	"nexstore/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Admin wallet routes take minor units directly, matching the observed
// contract; everything else on the API speaks rupees.
type WalletAdjustRequest struct {
	AmountPaisa int64  `json:"amount_paisa" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required"`
}

func parseWalletAdjust(c *fiber.Ctx) (*WalletAdjustRequest, error) {
	var req WalletAdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, errors.New("INVALID_JSON")
	}
	if err := helpers.Validate.Struct(req); err != nil {
		return nil, errors.New("AMOUNT_AND_REASON_REQUIRED")
	}
	if len(strings.TrimSpace(req.Reason)) < config.Load().MinAdminReasonLen {
		return nil, errors.New("REASON_TOO_SHORT")
	}
	return &req, nil
}

func Recharge(c *fiber.Ctx) error {
	req, err := parseWalletAdjust(c)
	if err != nil {
		return helpers.JSONBadRequest(c, err.Error())
	}

	userID := c.Params("id")
	var entry *models.WalletTransaction
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		entry, err = services.CreditWallet(tx, userID, req.AmountPaisa,
			models.TrxAdminRecharge, "", "", req.Reason)
		return err
	})
	if err != nil {
		return helpers.JSONBadRequest(c, "FAILED_TO_RECHARGE_WALLET")
	}

	services.LogAdminAction(adminID(c), "wallet_recharge", userID,
		fmt.Sprintf("Recharged ₹%.2f: %s", helpers.PaisaToRupees(req.AmountPaisa), req.Reason))

	return helpers.JSONSuccess(c, "Wallet recharged", fiber.Map{
		"transaction_id": entry.ID,
		"balance_after":  helpers.PaisaToRupees(entry.BalanceAfterPaisa),
	})
}

// Redeem pulls money back out of a wallet. Capped per transaction so one
// operator slip cannot drain an account.
func Redeem(c *fiber.Ctx) error {
	req, err := parseWalletAdjust(c)
	if err != nil {
		return helpers.JSONBadRequest(c, err.Error())
	}
	if req.AmountPaisa > config.Load().RedeemCapPaisa {
		return helpers.JSONBadRequest(c, "AMOUNT_EXCEEDS_REDEEM_CAP")
	}

	userID := c.Params("id")
	var entry *models.WalletTransaction
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		entry, err = services.DebitWallet(tx, userID, req.AmountPaisa,
			models.TrxAdminRedeem, "", req.Reason)
		return err
	})
	if errors.Is(err, services.ErrInsufficientBalance) {
		return helpers.JSONBadRequest(c, "INSUFFICIENT_WALLET_BALANCE")
	}
	if err != nil {
		return helpers.JSONBadRequest(c, "FAILED_TO_REDEEM_WALLET")
	}

	services.LogAdminAction(adminID(c), "wallet_redeem", userID,
		fmt.Sprintf("Redeemed ₹%.2f: %s", helpers.PaisaToRupees(req.AmountPaisa), req.Reason))

	return helpers.JSONSuccess(c, "Wallet redeemed", fiber.Map{
		"transaction_id": entry.ID,
		"balance_after":  helpers.PaisaToRupees(entry.BalanceAfterPaisa),
	})
}
