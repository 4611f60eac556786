package services

import (
	"log"

	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletDrawdown decides how much of the balance covers the price and the
// order's initial status. Pure. walletUsed + required always equals pricePaisa.
func WalletDrawdown(balancePaisa, pricePaisa int64) (walletUsed, required int64, status string) {
	if balancePaisa > 0 {
		walletUsed = balancePaisa
		if walletUsed > pricePaisa {
			walletUsed = pricePaisa
		}
	}
	required = pricePaisa - walletUsed

	switch {
	case required == 0:
		status = models.StatusWalletFullyPaid
	case walletUsed > 0:
		status = models.StatusWalletPartialPaid
	default:
		status = models.StatusPendingPayment
	}
	return walletUsed, required, status
}

// CreateProductOrder locks the catalog price, draws down the wallet as far
// as it goes, and rounds the remaining ask up to a clean figure. The wallet
// debit and the order row commit together or not at all.
func CreateProductOrder(user *models.User, pkg *models.Package, playerUID string) (*models.Order, error) {
	lockedPrice := pkg.PricePaisa
	walletUsed, required, status := WalletDrawdown(user.WalletBalancePaisa, lockedPrice)

	order := &models.Order{
		ID:                   uuid.New().String(),
		OrderType:            models.OrderTypeProductTopup,
		UserID:               user.ID,
		Username:             user.Username,
		PlayerUID:            playerUID,
		Server:               "Bangladesh",
		PackageID:            pkg.ID,
		PackageName:          pkg.Name,
		PackageType:          pkg.Type,
		Amount:               pkg.Amount,
		LockedPricePaisa:     lockedPrice,
		WalletUsedPaisa:      walletUsed,
		PaymentRequiredPaisa: required,
		PaymentAmountPaisa:   helpers.RoundUpPaymentPaisa(required),
		Status:               status,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if walletUsed > 0 {
			if _, err := DebitWallet(tx, user.ID, walletUsed, models.TrxOrderPayment,
				order.ID, "Payment for order "+order.ShortID()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == models.StatusWalletFullyPaid {
		if err := EnqueueOrder(database.DB, order.ID); err != nil {
			log.Printf("❌ enqueue order %s: %v", order.ID, err)
		}
	}
	return order, nil
}

// CreateWalletLoadOrder opens a top-up intent; the wallet is only credited
// once the matching payment arrives.
func CreateWalletLoadOrder(user *models.User, loadAmountPaisa int64) (*models.Order, error) {
	order := &models.Order{
		ID:                   uuid.New().String(),
		OrderType:            models.OrderTypeWalletLoad,
		UserID:               user.ID,
		Username:             user.Username,
		PackageName:          "Wallet Load",
		PackageType:          models.OrderTypeWalletLoad,
		LoadAmountPaisa:      loadAmountPaisa,
		LockedPricePaisa:     loadAmountPaisa,
		PaymentRequiredPaisa: loadAmountPaisa,
		PaymentAmountPaisa:   helpers.RoundUpPaymentPaisa(loadAmountPaisa),
		Status:               models.StatusPendingPayment,
	}

	if err := database.DB.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}
