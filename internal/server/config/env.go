package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration from environment variables. The
// encryption key in particular is expected to arrive this way in
// production (LOCKBOX_ENCRYPTION_KEY).
func parseEnv(config *Config) {
	setString := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	setString(&config.EndpointAddr, "LOCKBOX_ADDRESS")
	setString(&config.DatabaseDSN, "LOCKBOX_DATABASE_DSN")
	setString(&config.JWTSecret, "LOCKBOX_JWT_SECRET")
	setString(&config.EncryptionKey, "LOCKBOX_ENCRYPTION_KEY")
	setString(&config.S3RootUser, "LOCKBOX_S3_ROOT_USER")
	setString(&config.S3RootPassword, "LOCKBOX_S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "LOCKBOX_S3_BUCKET")
	setString(&config.S3Region, "LOCKBOX_S3_REGION")
	setString(&config.S3BaseEndpoint, "LOCKBOX_S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("LOCKBOX_MAX_UPLOAD_BYTES"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MaxUploadBytes = n
		}
	}

	if v, ok := os.LookupEnv("LOCKBOX_SHUTDOWN_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.ShutdownTimeout = d
		}
	}
}
