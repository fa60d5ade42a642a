package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	require.Equal(t, 5, cfg.Kafka.Breaker.MaxFailures)
	require.Equal(t, 30*time.Second, cfg.Notifier.Breaker.ResetTimeout)
	require.Equal(t, 10*time.Second, cfg.Notifier.Timeout)
}

func TestLoadBreakerPrefixes(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("KAFKA_BREAKER_MAX_FAILURES", "3")
	t.Setenv("NOTIFY_BREAKER_MAX_FAILURES", "9")
	t.Setenv("NOTIFY_BREAKER_RESET_TIMEOUT", "2m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Kafka.Breaker.MaxFailures)
	require.Equal(t, 9, cfg.Notifier.Breaker.MaxFailures)
	require.Equal(t, 2*time.Minute, cfg.Notifier.Breaker.ResetTimeout)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.EqualError(t, err, "JWT_SECRET must be set to a non-default value in production")

	t.Setenv("JWT_SECRET", DefaultJWTSecret)
	_, err = Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Environment: "production", Auth: AuthConfig{JWTSecret: "s3cret"}}
	require.NoError(t, cfg.Validate())

	cfg.Auth.JWTSecret = DefaultJWTSecret
	require.Error(t, cfg.Validate())

	cfg.Environment = "development"
	require.NoError(t, cfg.Validate())
}
