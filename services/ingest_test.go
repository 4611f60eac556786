package services

import (
	"testing"

	"nexstore/models"

	"github.com/stretchr/testify/assert"
)

func TestInsertCollisionResultWithoutRRN(t *testing.T) {
	sms := &models.SmsMessage{ID: "s1"}

	res := insertCollisionResult(sms, "")
	assert.True(t, res.Duplicate, "no parsed rrn means the fingerprint collided")
	assert.False(t, res.DuplicateRRN)
	assert.Equal(t, "Duplicate SMS ignored", res.Message)
}

func TestInsertCollisionResultWithRRN(t *testing.T) {
	sms := &models.SmsMessage{ID: "s1"}

	res := insertCollisionResult(sms, "RRN001")
	assert.True(t, res.DuplicateRRN)
	assert.False(t, res.Duplicate)
	assert.Equal(t, "Transaction reference already recorded", res.Message)
}
