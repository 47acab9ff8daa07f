package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setBaseEnv pins every variable LoadConfig reads so ambient environment
// cannot leak into a test.
func setBaseEnv(t *testing.T) {
	t.Helper()
	for key, value := range map[string]string{
		"DB_USER":     "app",
		"DB_PASSWORD": "secret",
		"DB_NAME":     "inkstream",
		"JWT_SECRET":  "test-secret",
		"S3_BUCKET":   "covers",
	} {
		t.Setenv(key, value)
	}
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_POOL_SIZE",
		"JWT_TOKEN_DURATION", "PORT", "CLIENT_URL",
		"S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
		"S3_USE_PATH_STYLE", "S3_PUBLIC_BASE_URL", "UPLOAD_FOLDER",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)

	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenDuration)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.ClientOrigin)

	assert.Equal(t, "covers", cfg.Storage.Bucket)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.Equal(t, "uploads", cfg.Storage.UploadFolder)
	assert.False(t, cfg.Storage.UsePathStyle)
}

func TestLoadConfigOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("JWT_TOKEN_DURATION", "15m")
	t.Setenv("PORT", "8080")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.DB.MaxSize)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenDuration)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Storage.UsePathStyle)
}

func TestLoadConfigCollectsAllMissingVariables(t *testing.T) {
	setBaseEnv(t)
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("S3_BUCKET")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "S3_BUCKET")
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("JWT_TOKEN_DURATION", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "JWT_TOKEN_DURATION")
}

func TestLoadConfigClampsPoolSize(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_POOL_SIZE", "2")

	// Out-of-range sizes are reported as configuration errors.
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_POOL_SIZE")
}
