package orders

import (
	"testing"

	"nexstore/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusAfterUIDFix(t *testing.T) {
	next, ok := statusAfterUIDFix(models.StatusInvalidUID)
	assert.True(t, ok)
	assert.Equal(t, models.StatusPendingPayment, next, "fixing the uid reopens the order")

	next, ok = statusAfterUIDFix(models.StatusPendingPayment)
	assert.True(t, ok)
	assert.Equal(t, models.StatusPendingPayment, next)

	// A settled or in-flight order must never be pulled back to pending.
	for _, status := range []string{
		models.StatusPaid, models.StatusQueued, models.StatusProcessing,
		models.StatusSuccess, models.StatusManualReview, models.StatusRefunded,
	} {
		_, ok := statusAfterUIDFix(status)
		assert.False(t, ok, "uid fix must be rejected for %s", status)
	}
}
