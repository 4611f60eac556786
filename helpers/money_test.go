package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversionRoundTrip(t *testing.T) {
	assert.Equal(t, int64(12550), RupeesToPaisa(125.50))
	assert.Equal(t, int64(10000), RupeesToPaisa(100))
	assert.Equal(t, 125.50, PaisaToRupees(12550))

	// Float-unfriendly figures must not lose a paisa.
	assert.Equal(t, int64(1010), RupeesToPaisa(10.10))
	assert.Equal(t, int64(2999), RupeesToPaisa(29.99))
}

func TestRoundUpPaymentPaisa(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		out  int64
	}{
		{"zero", 0, 0},
		{"negative", -500, 0},
		{"small rounds to next rupee", 4230, 4300},
		{"exact rupee below 100 unchanged", 9900, 9900},
		{"mid band rounds to next 5", 10100, 10500},
		{"mid band exact multiple unchanged", 25000, 25000},
		{"upper band rounds to next 10", 50100, 51000},
		{"upper band exact multiple unchanged", 60000, 60000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, RoundUpPaymentPaisa(tt.in))
		})
	}
}
