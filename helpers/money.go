package helpers

import (
	"math"

	"github.com/shopspring/decimal"
)

// All amounts inside the core are int64 paisa. Rupee decimals exist only at
// the HTTP boundary, and only through these two converters.

func PaisaToRupees(paisa int64) float64 {
	f, _ := decimal.NewFromInt(paisa).Div(decimal.NewFromInt(100)).Float64()
	return f
}

func RupeesToPaisa(rupees float64) int64 {
	return decimal.NewFromFloat(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// RoundUpPaymentPaisa rounds the asked payment up to a clean rupee figure:
// below ₹100 to the next ₹1, ₹100-500 to the next ₹5, above ₹500 to the
// next ₹10.
func RoundUpPaymentPaisa(amountPaisa int64) int64 {
	if amountPaisa <= 0 {
		return 0
	}

	rupees := float64(amountPaisa) / 100.0

	var rounded float64
	switch {
	case rupees < 100:
		rounded = math.Ceil(rupees)
	case rupees <= 500:
		rounded = math.Ceil(rupees/5) * 5
	default:
		rounded = math.Ceil(rupees/10) * 10
	}

	return int64(rounded * 100)
}
