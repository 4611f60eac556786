package config

import (
	"os"
	"strconv"
	"time"
)

// Runtime knobs for the reconciliation core. Read once from env at startup;
// every value has a working default so a bare .env still boots.
type Config struct {
	// Matching / overpayment safety
	MaxOverpaymentRatio     float64       // payment > required*ratio => suspicious
	MaxAutoCreditPaisa      int64         // overpayment above this is never auto-credited
	RedeemCapPaisa          int64         // single admin redeem cap
	MinAdminReasonLen       int           // recharge/redeem reason length floor
	MinWalletLoadPaisa      int64         // smallest wallet load order
	OrderExpiry             time.Duration // pending_payment lifetime
	SmsSuspiciousAfter      time.Duration // unmatched SMS flagged after this
	StuckProcessingAfter    time.Duration // processing orders reset after this
	MaxAutomationRetries    int           // delivery attempts before manual_review
	AutomationTimeout       time.Duration // per delivery attempt
	DispatchInterval        time.Duration // queued-order drain tick
	ExpiryInterval          time.Duration
	SuspiciousFlagInterval  time.Duration
	StuckProcessingInterval time.Duration
}

var cfg *Config

func Load() *Config {
	if cfg != nil {
		return cfg
	}
	cfg = &Config{
		MaxOverpaymentRatio:     envFloat("MAX_OVERPAYMENT_RATIO", 3.0),
		MaxAutoCreditPaisa:      envInt64("MAX_AUTO_CREDIT_PAISA", 100000), // ₹1,000
		RedeemCapPaisa:          envInt64("REDEEM_CAP_PAISA", 500000),      // ₹5,000
		MinAdminReasonLen:       5,
		MinWalletLoadPaisa:      envInt64("MIN_WALLET_LOAD_PAISA", 1000), // ₹10
		OrderExpiry:             envDuration("ORDER_EXPIRY", 24*time.Hour),
		SmsSuspiciousAfter:      envDuration("SMS_SUSPICIOUS_AFTER", time.Hour),
		StuckProcessingAfter:    envDuration("STUCK_PROCESSING_AFTER", 10*time.Minute),
		MaxAutomationRetries:    envInt("MAX_AUTOMATION_RETRIES", 3),
		AutomationTimeout:       envDuration("AUTOMATION_TIMEOUT", 2*time.Minute),
		DispatchInterval:        envDuration("DISPATCH_INTERVAL", 30*time.Second),
		ExpiryInterval:          envDuration("EXPIRY_INTERVAL", time.Hour),
		SuspiciousFlagInterval:  envDuration("SUSPICIOUS_FLAG_INTERVAL", 15*time.Minute),
		StuckProcessingInterval: envDuration("STUCK_PROCESSING_INTERVAL", 5*time.Minute),
	}
	return cfg
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
