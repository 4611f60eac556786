package services

import (
	"testing"
	"time"

	"nexstore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(id string, amountPaisa int64, age time.Duration) models.Order {
	return models.Order{
		ID:                 id,
		PaymentAmountPaisa: amountPaisa,
		CreatedAt:          time.Now().Add(-age),
	}
}

func TestSelectCandidatePrefersOldest(t *testing.T) {
	candidates := []models.Order{
		orderAt("newer", 10000, time.Minute),
		orderAt("oldest", 10000, time.Hour),
		orderAt("middle", 10000, 30*time.Minute),
	}

	best := SelectCandidate(candidates, 10000)
	require.NotNil(t, best)
	assert.Equal(t, "oldest", best.ID)
}

func TestSelectCandidateRequiresExactAmount(t *testing.T) {
	candidates := []models.Order{
		orderAt("too-cheap", 9900, time.Hour),
		orderAt("too-dear", 10100, time.Hour),
	}
	assert.Nil(t, SelectCandidate(candidates, 10000))

	candidates = append(candidates, orderAt("exact", 10000, time.Minute))
	best := SelectCandidate(candidates, 10000)
	require.NotNil(t, best)
	assert.Equal(t, "exact", best.ID)
}

func TestSelectCandidateEmpty(t *testing.T) {
	assert.Nil(t, SelectCandidate(nil, 10000))
	assert.Nil(t, SelectCandidate([]models.Order{}, 10000))
}

func strPtr(s string) *string { return &s }

func TestReferenceConflict(t *testing.T) {
	taken := []models.Order{
		{ID: "other", PaymentRRN: strPtr("RRN001"), SmsFingerprint: strPtr("fp-aaa")},
	}

	assert.True(t, ReferenceConflict(taken, "mine", "RRN001", "fp-zzz"),
		"rrn already spent on another order")
	assert.True(t, ReferenceConflict(taken, "mine", "", "fp-aaa"),
		"same raw message on another order, even without an rrn")
	assert.False(t, ReferenceConflict(taken, "mine", "RRN002", "fp-zzz"))
	assert.False(t, ReferenceConflict(taken, "other", "RRN001", "fp-aaa"),
		"an order never conflicts with its own references")
	assert.False(t, ReferenceConflict(nil, "mine", "RRN001", "fp-aaa"))
}
