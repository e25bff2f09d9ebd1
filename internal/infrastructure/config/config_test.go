package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")

	cfg := LoadConfig()

	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadConfigPrefersEnvironmentSpecificKeys(t *testing.T) {
	t.Setenv("ENV_TYPE", "local")
	t.Setenv("DB_HOST", "plain-host")
	t.Setenv("LOCAL_DB_HOST", "local-host")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("OTP_TTL_MINUTES", "3")

	cfg := LoadConfig()

	assert.Equal(t, "local-host", cfg.DBHost)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 3*time.Minute, cfg.OTPTTL)
	assert.Contains(t, cfg.GetDSN(), "host=local-host")
	assert.Contains(t, cfg.GetDSN(), "port=5432")
}

func TestLoadConfigServerRequiresJWTSecret(t *testing.T) {
	t.Setenv("ENV_TYPE", "SERVER")

	require.Panics(t, func() { LoadConfig() })

	t.Setenv("JWT_SECRET_KEY", "s3cret")
	cfg := LoadConfig()
	assert.Equal(t, "s3cret", cfg.JWTSecretKey)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true", cfg.GetDSN())

	cfg = &Config{DBDriver: "sqlite", DBPath: "file::memory:"}
	assert.Equal(t, "file::memory:", cfg.GetDSN())

	cfg = &Config{RedisHost: "redis", RedisPort: "6379"}
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
}
