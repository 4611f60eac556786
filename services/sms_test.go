package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSmsMessage(t *testing.T) {
	raw := "Rs 100.00 credited to your account from 900****910 for order, payment /FonePay RRN ABC123"
	parsed, err := ParseSmsMessage(raw)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), parsed.AmountPaisa)
	assert.Equal(t, "910", parsed.Last3Digits)
	assert.Equal(t, "ABC123", parsed.RRN)
}

func TestParseSmsMessageVariants(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		amountPaisa int64
		last3       string
		rrn         string
		method      string
		remark      string
	}{
		{
			name:        "masked with X",
			raw:         "Dear customer, Rs. 1,250.50 received from 98XXXXX456 for wallet RRN: XY99Z, topup /eSewa",
			amountPaisa: 125050,
			last3:       "456",
			rrn:         "XY99Z",
			method:      "eSewa",
			remark:      "topup",
		},
		{
			name:        "stars only mask",
			raw:         "Rs 45 from XXX****789 for goods, gift /FonePay",
			amountPaisa: 4500,
			last3:       "789",
			method:      "FonePay",
			remark:      "gift /FonePay",
		},
		{
			name:        "no commas means no method",
			raw:         "Rs 500.00 received from 901****321 for order RRN QWE789",
			amountPaisa: 50000,
			last3:       "321",
			rrn:         "QWE789",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseSmsMessage(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.amountPaisa, parsed.AmountPaisa)
			assert.Equal(t, tt.last3, parsed.Last3Digits)
			assert.Equal(t, tt.rrn, parsed.RRN)
			assert.Equal(t, tt.method, parsed.Method)
		})
	}
}

func TestParseSmsMessageNeverGuesses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no amount", "payment received from 900****910 RRN ABC123"},
		{"no digits", "Rs 100.00 received RRN ABC123"},
		{"empty", ""},
		{"garbage", "hello there friend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSmsMessage(tt.raw)
			assert.ErrorIs(t, err, ErrUnparsed)
		})
	}
}

func TestSmsFingerprint(t *testing.T) {
	a := SmsFingerprint("Rs 100 from 900****910")
	b := SmsFingerprint("  Rs 100 from 900****910  ")
	c := SmsFingerprint("Rs 100 from 900****911")

	assert.Equal(t, a, b, "trimmed whitespace must not change the fingerprint")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
