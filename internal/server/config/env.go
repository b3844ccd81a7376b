package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a local
// .env file first when one is present. Unset variables leave the current
// value untouched; unparsable durations or booleans are ignored the same way.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("TOKEN_EXPIRY_ENFORCED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.TokenExpiryEnforced = b
		}
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		config.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		config.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		config.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		config.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		config.S3BaseEndpoint = v
	}
}
