package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("LOCKBOX_ADDRESS", ":9999")
	t.Setenv("LOCKBOX_DATABASE_DSN", "postgres://env")
	t.Setenv("LOCKBOX_JWT_SECRET", "env-jwt")
	t.Setenv("LOCKBOX_ENCRYPTION_KEY", "abcdefghijklmnopqrstuvwxyz012345")
	t.Setenv("LOCKBOX_MAX_UPLOAD_BYTES", "2048")
	t.Setenv("LOCKBOX_SHUTDOWN_TIMEOUT", "7s")
	t.Setenv("LOCKBOX_S3_BUCKET", "env-bucket")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, "env-jwt", c.JWTSecret)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz012345", c.EncryptionKey)
	assert.Equal(t, int64(2048), c.MaxUploadBytes)
	assert.Equal(t, 7*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "env-bucket", c.S3Bucket)
}

func TestParseEnv_IgnoresUnsetAndInvalid(t *testing.T) {
	t.Setenv("LOCKBOX_MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("LOCKBOX_SHUTDOWN_TIMEOUT", "soon")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":8080", c.EndpointAddr, "unset vars must keep defaults")
	assert.Equal(t, int64(10<<20), c.MaxUploadBytes, "invalid number ignored")
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout, "invalid duration ignored")
}
