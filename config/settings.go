package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

var (
	// StoreTimeout bounds every store call.
	StoreTimeout = 5 * time.Second

	// StrictNumericIngest rejects measurements whose metric fields are
	// present but not numeric. When false, such values are stored as NULL
	// to tolerate sensors that only report a subset of metrics cleanly.
	StrictNumericIngest bool

	// RetentionDays is how long measurement rows are kept. Zero keeps them
	// indefinitely.
	RetentionDays int

	// JWTSecret signs and verifies session tokens.
	JWTSecret = []byte("dev-secret-change-me")
)

// LoadSettings reads runtime policy from the environment. Call after
// godotenv.Load so a local .env is picked up.
func LoadSettings() {
	if v := os.Getenv("STORE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			StoreTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	StrictNumericIngest = os.Getenv("INGEST_STRICT_NUMERIC") == "true"

	if v := os.Getenv("MEASUREMENT_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days >= 0 {
			RetentionDays = days
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		JWTSecret = []byte(secret)
	} else {
		log.Println("JWT_SECRET not set, using insecure default")
	}
}
