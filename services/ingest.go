package services

import (
	"errors"
	"log"
	"time"

	"nexstore/database"
	"nexstore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngestResult struct {
	Sms              *models.SmsMessage
	Duplicate        bool // same raw message seen before
	DuplicateRRN     bool // rrn already spent on another order
	Matched          bool
	Order            *models.Order
	OverpaymentPaisa int64
	Message          string
}

// insertCollisionResult classifies a unique-index violation on the sms insert.
// With no parsed reference the collision can only be the fingerprint index, so
// it is a resent message, not a reused reference.
func insertCollisionResult(sms *models.SmsMessage, rrn string) *IngestResult {
	if rrn == "" {
		return &IngestResult{Sms: sms, Duplicate: true, Message: "Duplicate SMS ignored"}
	}
	return &IngestResult{Sms: sms, DuplicateRRN: true, Message: "Transaction reference already recorded"}
}

// IngestSms is the full pipeline behind /sms/receive and /admin/sms/input:
// parse, persist, match, settle. A message that fails to parse is stored
// anyway; money-shaped text never gets dropped.
func IngestSms(rawMessage, adminID string) (*IngestResult, error) {
	db := database.DB
	fingerprint := SmsFingerprint(rawMessage)

	var existing models.SmsMessage
	err := db.Where("fingerprint = ?", fingerprint).First(&existing).Error
	if err == nil {
		return &IngestResult{Sms: &existing, Duplicate: true, Message: "Duplicate SMS ignored"}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	parsed, parseErr := ParseSmsMessage(rawMessage)

	sms := &models.SmsMessage{
		ID:           uuid.New().String(),
		RawMessage:   rawMessage,
		Fingerprint:  fingerprint,
		AmountPaisa:  parsed.AmountPaisa,
		Last3Digits:  parsed.Last3Digits,
		Method:       parsed.Method,
		Remark:       parsed.Remark,
		ParseFailed:  parseErr != nil,
		ParsedAt:     time.Now().UTC(),
		InputByAdmin: adminID,
	}
	if parsed.RRN != "" {
		sms.RRN = &parsed.RRN
	}

	// The unique indexes on fingerprint and rrn close the race between two
	// concurrent submissions carrying the same reference.
	if err := db.Create(sms).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return insertCollisionResult(sms, parsed.RRN), nil
		}
		return nil, err
	}

	if parseErr != nil {
		return &IngestResult{Sms: sms, Message: "SMS saved, could not parse payment fields"}, nil
	}

	order, err := TryMatchSms(db, sms)
	if errors.Is(err, ErrDuplicateRRN) {
		return &IngestResult{Sms: sms, DuplicateRRN: true, Message: "Transaction reference already used for another order"}, nil
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return &IngestResult{Sms: sms, Message: "SMS saved, no matching order found"}, nil
	}

	result, err := ProcessPayment(db, order, sms.AmountPaisa, parsed.RRN, rawMessage, fingerprint, sms.ID)
	if errors.Is(err, ErrStatusConflict) {
		// Lost the race for this order; the SMS stays parked for the operator.
		return &IngestResult{Sms: sms, Message: "SMS saved, matching order was settled concurrently"}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := MarkSmsUsed(db, sms.ID, order.ID); err != nil {
		return nil, err
	}

	if result.Status == models.StatusPaid {
		if err := EnqueueOrder(db, order.ID); err != nil {
			log.Printf("❌ enqueue order %s: %v", order.ID, err)
		}
	}

	log.Printf("✅ sms %s matched to order %s (overpayment %d paisa)", sms.ID, order.ShortID(), result.OverpaymentPaisa)

	return &IngestResult{
		Sms:              sms,
		Matched:          true,
		Order:            order,
		OverpaymentPaisa: result.OverpaymentPaisa,
		Message:          "SMS matched to order " + order.ShortID(),
	}, nil
}
