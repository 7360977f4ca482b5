package env

import (
	"log"
	"os"
	"time"
)

// Config carries everything the service reads from the environment. It is
// loaded once in main and handed to constructors explicitly — in particular
// the PayFast passphrase is injected into the signature codec rather than
// read from ambient globals, so signing stays testable with arbitrary
// secrets.
type Config struct {
	Port        string
	DatabaseURL string

	PayfastMerchantID    string
	PayfastMerchantKey   string
	PayfastPassphrase    string
	PayfastSpaceEncoding string
	PayfastReturnURL     string
	PayfastCancelURL     string
	PayfastNotifyURL     string
	PayfastSandbox       bool

	PaymentCurrency string
	StorageTimeout  time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:        getOptionalEnv("PORT", "8080"),
		DatabaseURL: getRequiredEnv("DATABASE_URL"),

		PayfastMerchantID:    getRequiredEnv("PAYFAST_MERCHANT_ID"),
		PayfastMerchantKey:   getRequiredEnv("PAYFAST_MERCHANT_KEY"),
		PayfastPassphrase:    getOptionalEnv("PAYFAST_PASSPHRASE", ""),
		PayfastSpaceEncoding: getOptionalEnv("PAYFAST_SPACE_ENCODING", "plus"),
		PayfastReturnURL:     getRequiredEnv("PAYFAST_RETURN_URL"),
		PayfastCancelURL:     getRequiredEnv("PAYFAST_CANCEL_URL"),
		PayfastNotifyURL:     getRequiredEnv("PAYFAST_NOTIFY_URL"),
		PayfastSandbox:       getOptionalEnv("PAYFAST_SANDBOX", "true") == "true",

		PaymentCurrency: getOptionalEnv("PAYMENT_CURRENCY", "ZAR"),
		StorageTimeout:  getDurationEnv("STORAGE_TIMEOUT", 5*time.Second),
	}

	// Secrets (passphrase, database credentials) are deliberately not echoed.
	log.Printf("[ENV] Configuration loaded:")
	log.Printf("  - Port: %s", cfg.Port)
	log.Printf("  - Merchant: %s", cfg.PayfastMerchantID)
	log.Printf("  - Space encoding: %s", cfg.PayfastSpaceEncoding)
	log.Printf("  - Sandbox: %v", cfg.PayfastSandbox)
	log.Printf("  - Currency: %s", cfg.PaymentCurrency)
	log.Printf("  - Storage timeout: %s", cfg.StorageTimeout)

	return cfg
}

func getRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("[ENV] Required environment variable %s is not set", key)
	}
	return value
}

func getOptionalEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("[ENV] %s is not a valid duration: %v", key, err)
	}
	return d
}
