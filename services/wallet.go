package services

import (
	"errors"
	"fmt"

	"nexstore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
)

// CreditWallet appends a credit ledger row and bumps the cached balance.
// The user row is locked FOR UPDATE for the duration, so concurrent writers
// against the same user serialize here. Must run inside tx.
func CreditWallet(tx *gorm.DB, userID string, amountPaisa int64, trxType, orderID, smsID, description string) (*models.WalletTransaction, error) {
	if amountPaisa <= 0 {
		return nil, ErrNonPositiveAmount
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("wallet credit: %w", err)
	}

	before := user.WalletBalancePaisa
	after := before + amountPaisa

	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("wallet_balance_paisa", after).Error; err != nil {
		return nil, err
	}

	entry := &models.WalletTransaction{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Type:               trxType,
		AmountPaisa:        amountPaisa,
		BalanceBeforePaisa: before,
		BalanceAfterPaisa:  after,
		OrderID:            orderID,
		SmsID:              smsID,
		Description:        description,
	}
	if entry.Description == "" {
		entry.Description = trxType
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// DebitWallet rejects with ErrInsufficientBalance before touching anything;
// there is no partial debit. The ledger row carries the amount as negative.
func DebitWallet(tx *gorm.DB, userID string, amountPaisa int64, trxType, orderID, description string) (*models.WalletTransaction, error) {
	if amountPaisa <= 0 {
		return nil, ErrNonPositiveAmount
	}

	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("wallet debit: %w", err)
	}

	before := user.WalletBalancePaisa
	if before < amountPaisa {
		return nil, ErrInsufficientBalance
	}
	after := before - amountPaisa

	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("wallet_balance_paisa", after).Error; err != nil {
		return nil, err
	}

	entry := &models.WalletTransaction{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Type:               trxType,
		AmountPaisa:        -amountPaisa,
		BalanceBeforePaisa: before,
		BalanceAfterPaisa:  after,
		OrderID:            orderID,
		Description:        description,
	}
	if entry.Description == "" {
		entry.Description = trxType
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}
