package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"nexstore/helpers"
)

// ErrUnparsed means amount or account digits could not be extracted. A
// financial field is never guessed; the raw message is kept for manual
// handling instead.
var ErrUnparsed = errors.New("sms missing amount or account digits")

type ParsedSms struct {
	AmountPaisa int64
	Last3Digits string
	RRN         string
	Method      string
	Remark      string
}

var (
	amountRegex = regexp.MustCompile(`(?i)Rs\.?\s*([0-9,]+\.?[0-9]*)`)
	rrnRegex    = regexp.MustCompile(`(?i)RRN\s*[:\-]?\s*([A-Za-z0-9]+)`)

	// Masked sender patterns: 900****910, 98XXXXX910, XXX****910, "from xxx910 for"
	phoneRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+[\*X]+(\d{3})\b`),
		regexp.MustCompile(`(?i)[X\*]+(\d{3})\b`),
		regexp.MustCompile(`(?i)from\s+\S*?(\d{3})\s+for`),
	}
)

// ParseSmsMessage extracts payment fields from a bank notification. Pure.
func ParseSmsMessage(raw string) (ParsedSms, error) {
	var parsed ParsedSms

	if m := amountRegex.FindStringSubmatch(raw); m != nil {
		rupees, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err == nil {
			parsed.AmountPaisa = helpers.RupeesToPaisa(rupees)
		}
	}

	for _, re := range phoneRegexes {
		if m := re.FindStringSubmatch(raw); m != nil {
			parsed.Last3Digits = m[1]
			break
		}
	}

	if m := rrnRegex.FindStringSubmatch(raw); m != nil {
		parsed.RRN = m[1]
	}

	// Remark and method live in the last comma part: "remark /FonePay"
	parts := strings.Split(raw, ",")
	if len(parts) >= 2 {
		last := strings.TrimSpace(parts[len(parts)-1])
		if strings.Contains(last, "/") {
			methodParts := strings.Split(last, "/")
			if len(methodParts) >= 2 {
				parsed.Remark = strings.TrimSpace(methodParts[0])
				parsed.Method = strings.TrimSpace(methodParts[len(methodParts)-1])
			}
		}
	}

	if parsed.AmountPaisa <= 0 || parsed.Last3Digits == "" {
		return parsed, ErrUnparsed
	}
	return parsed, nil
}

// SmsFingerprint dedups whole messages regardless of whether they parsed.
func SmsFingerprint(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}
