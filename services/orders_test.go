package services

import (
	"testing"

	"nexstore/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionHappyPath(t *testing.T) {
	path := []string{
		models.StatusPendingPayment,
		models.StatusPaid,
		models.StatusQueued,
		models.StatusProcessing,
		models.StatusSuccess,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]),
			"%s -> %s should be allowed", path[i], path[i+1])
	}
}

func TestTerminalStatesAreSticky(t *testing.T) {
	terminals := []string{models.StatusSuccess, models.StatusRefunded, models.StatusExpired}
	targets := []string{
		models.StatusPendingPayment, models.StatusPaid, models.StatusQueued,
		models.StatusProcessing, models.StatusSuccess, models.StatusFailed,
	}

	for _, from := range terminals {
		assert.True(t, IsTerminal(from))
		for _, to := range targets {
			assert.False(t, CanTransition(from, to),
				"terminal %s must reject automated move to %s", from, to)
		}
	}
}

func TestCanTransitionRejectsSkips(t *testing.T) {
	assert.False(t, CanTransition(models.StatusPendingPayment, models.StatusSuccess))
	assert.False(t, CanTransition(models.StatusPendingPayment, models.StatusProcessing))
	assert.False(t, CanTransition(models.StatusQueued, models.StatusSuccess))
	assert.False(t, CanTransition(models.StatusPaid, models.StatusSuccess),
		"only wallet loads complete without delivery, via the force path")
	assert.False(t, CanTransition(models.StatusSuccess, models.StatusRefunded),
		"refund is an admin override, not an automated transition")
}

func TestFailureRecoveryPaths(t *testing.T) {
	assert.True(t, CanTransition(models.StatusProcessing, models.StatusFailed))
	assert.True(t, CanTransition(models.StatusFailed, models.StatusQueued))
	assert.True(t, CanTransition(models.StatusFailed, models.StatusManualReview))
	assert.True(t, CanTransition(models.StatusProcessing, models.StatusQueued),
		"stuck processing orders get requeued")
	assert.True(t, CanTransition(models.StatusInvalidUID, models.StatusPendingPayment),
		"fixing the player uid reopens the order")
}
