package services

import (
	"errors"
	"testing"

	"nexstore/models"
	"nexstore/providers"

	"github.com/stretchr/testify/assert"
)

func TestFailureOutcomeRetriesThenEscalates(t *testing.T) {
	maxRetries := 3
	deliveryErr := errors.New("agent timeout")

	// First two failures go back in line.
	for attempt := 1; attempt < maxRetries; attempt++ {
		status, state, reason := FailureOutcome(attempt, maxRetries, deliveryErr)
		assert.Equal(t, models.StatusQueued, status, "attempt %d", attempt)
		assert.Contains(t, state, "retry_")
		assert.Empty(t, reason)
	}

	// The third lands in manual review with the count preserved.
	status, state, reason := FailureOutcome(maxRetries, maxRetries, deliveryErr)
	assert.Equal(t, models.StatusManualReview, status)
	assert.Equal(t, "max_retries", state)
	assert.Contains(t, reason, "after 3 attempts")
}

func TestFailureOutcomeInvalidUIDNeverRetries(t *testing.T) {
	status, state, reason := FailureOutcome(1, 3, providers.ErrInvalidUID)
	assert.Equal(t, models.StatusInvalidUID, status)
	assert.Equal(t, "invalid_uid", state)
	assert.NotEmpty(t, reason)

	// Even a wrapped error counts.
	wrapped := errors.Join(errors.New("delivery aborted"), providers.ErrInvalidUID)
	status, _, _ = FailureOutcome(1, 3, wrapped)
	assert.Equal(t, models.StatusInvalidUID, status)
}
