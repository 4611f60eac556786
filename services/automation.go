package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"nexstore/config"
	"nexstore/database"
	"nexstore/helpers"
	"nexstore/models"
	"nexstore/providers"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Fulfiller is swapped for a fake in tests.
var Fulfiller providers.Deliverer = providers.NewGarenaAgent()

// FailureOutcome decides where a failed delivery attempt lands. Pure so the
// retry policy is testable without a database.
func FailureOutcome(retryCount, maxRetries int, err error) (status, automationState, reason string) {
	if errors.Is(err, providers.ErrInvalidUID) {
		return models.StatusInvalidUID, "invalid_uid", "Player UID not found"
	}
	if retryCount < maxRetries {
		return models.StatusQueued, fmt.Sprintf("retry_%d", retryCount), ""
	}
	return models.StatusManualReview, "max_retries",
		fmt.Sprintf("Automation failed after %d attempts: %v", retryCount, err)
}

type automationEvent struct {
	At    time.Time `json:"at"`
	State string    `json:"state"`
	Error string    `json:"error,omitempty"`
}

// appendHistory adds one attempt record to the order's automation log.
func appendHistory(existing datatypes.JSON, state, errMsg string) datatypes.JSON {
	var events []automationEvent
	if len(existing) > 0 {
		_ = json.Unmarshal(existing, &events)
	}
	events = append(events, automationEvent{At: time.Now().UTC(), State: state, Error: errMsg})
	out, err := json.Marshal(events)
	if err != nil {
		return existing
	}
	return out
}

// ProcessAutomationOrder drives one queued order through delivery. The claim
// is an atomic queued -> processing compare-and-set, so two workers can never
// hold the same order.
func ProcessAutomationOrder(orderID string) {
	db := database.DB
	cfg := config.Load()
	now := time.Now().UTC()

	err := TransitionOrder(db, orderID,
		[]string{models.StatusQueued}, models.StatusProcessing,
		map[string]any{
			"automation_state":      "started",
			"processing_started_at": now,
		})
	if errors.Is(err, ErrStatusConflict) {
		return // claimed elsewhere or no longer queued
	}
	if err != nil {
		log.Printf("❌ claim order %s: %v", orderID, err)
		return
	}

	var order models.Order
	if err := db.Where("id = ?", orderID).First(&order).Error; err != nil {
		log.Printf("❌ load order %s: %v", orderID, err)
		return
	}

	account, err := claimCredential(db)
	if err != nil {
		_ = TransitionOrder(db, orderID,
			[]string{models.StatusProcessing}, models.StatusManualReview,
			map[string]any{
				"automation_state":  "no_garena_account",
				"suspicious_reason": "No active Garena account configured",
			})
		return
	}

	password, perr := helpers.DecryptCredential(account.Password)
	pin, pinErr := helpers.DecryptCredential(account.Pin)
	if perr != nil || pinErr != nil {
		_ = TransitionOrder(db, orderID,
			[]string{models.StatusProcessing}, models.StatusManualReview,
			map[string]any{
				"automation_state":  "credential_error",
				"suspicious_reason": "Failed to decrypt automation credentials",
			})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AutomationTimeout)
	defer cancel()

	deliveryErr := Fulfiller.Deliver(ctx, providers.DeliveryJob{
		OrderID:     order.ID,
		PlayerUID:   order.PlayerUID,
		Server:      order.Server,
		PackageType: order.PackageType,
		Amount:      order.Amount,
		Email:       account.Email,
		Password:    password,
		Pin:         pin,
	})

	if deliveryErr == nil {
		if err := TransitionOrder(db, orderID,
			[]string{models.StatusProcessing}, models.StatusSuccess,
			map[string]any{
				"automation_state":   "completed",
				"automation_history": appendHistory(order.AutomationHistory, "completed", ""),
				"completed_at":       time.Now().UTC(),
			}); err != nil {
			log.Printf("❌ complete order %s: %v", orderID, err)
			return
		}
		log.Printf("✅ order %s delivered via %s", order.ShortID(), account.Email)
		return
	}

	retryCount := order.RetryCount + 1
	status, state, reason := FailureOutcome(retryCount, cfg.MaxAutomationRetries, deliveryErr)

	set := map[string]any{
		"automation_state":   state,
		"automation_history": appendHistory(order.AutomationHistory, state, deliveryErr.Error()),
		"retry_count":        retryCount,
	}
	if reason != "" {
		set["suspicious_reason"] = reason
	}

	if status == models.StatusQueued {
		// Record the failure, then put it straight back in line.
		if err := TransitionOrder(db, orderID,
			[]string{models.StatusProcessing}, models.StatusFailed, set); err != nil {
			log.Printf("❌ fail order %s: %v", orderID, err)
			return
		}
		_ = TransitionOrder(db, orderID,
			[]string{models.StatusFailed}, models.StatusQueued, nil)
	} else {
		if err := TransitionOrder(db, orderID,
			[]string{models.StatusProcessing}, status, set); err != nil {
			log.Printf("❌ fail order %s: %v", orderID, err)
			return
		}
	}

	log.Printf("❌ order %s automation failed (attempt %d): %v", order.ShortID(), retryCount, deliveryErr)
}

// claimCredential picks the least-recently-used active account and stamps it.
func claimCredential(db *gorm.DB) (*models.GarenaAccount, error) {
	var account models.GarenaAccount
	if err := db.Where("active = true").
		Order("last_used_at ASC NULLS FIRST").
		First(&account).Error; err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := db.Model(&models.GarenaAccount{}).Where("id = ?", account.ID).
		Update("last_used_at", now).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ProcessAllQueued drains the automation queue, oldest first.
func ProcessAllQueued() int {
	var ids []string
	if err := database.DB.Model(&models.Order{}).
		Where("status = ? AND order_type = ?", models.StatusQueued, models.OrderTypeProductTopup).
		Order("queued_at ASC").
		Pluck("id", &ids).Error; err != nil {
		log.Printf("❌ list queued orders: %v", err)
		return 0
	}

	for _, id := range ids {
		ProcessAutomationOrder(id)
	}
	return len(ids)
}
