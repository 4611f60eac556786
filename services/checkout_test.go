package services

import (
	"testing"

	"nexstore/models"

	"github.com/stretchr/testify/assert"
)

func TestWalletDrawdown(t *testing.T) {
	cases := []struct {
		name         string
		balancePaisa int64
		pricePaisa   int64
		wantUsed     int64
		wantRequired int64
		wantStatus   string
	}{
		{"empty wallet", 0, 10000, 0, 10000, models.StatusPendingPayment},
		{"partial cover", 4000, 10000, 4000, 6000, models.StatusWalletPartialPaid},
		{"exact cover", 10000, 10000, 10000, 0, models.StatusWalletFullyPaid},
		{"balance exceeds price", 25000, 10000, 10000, 0, models.StatusWalletFullyPaid},
		{"one paisa short", 9999, 10000, 9999, 1, models.StatusWalletPartialPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			used, required, status := WalletDrawdown(tc.balancePaisa, tc.pricePaisa)
			assert.Equal(t, tc.wantUsed, used)
			assert.Equal(t, tc.wantRequired, required)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.pricePaisa, used+required, "drawdown must cover the full price")
		})
	}
}
