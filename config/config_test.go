package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/subs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 15, cfg.Server.WriteTimeout)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Webhook.Debug)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AuditDSNFallsBackToDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/subs")
	t.Setenv("AUDIT_DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Database.DSN, cfg.Audit.DSN)
}

func TestLoad_SeparateAuditDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/subs")
	t.Setenv("AUDIT_DATABASE_URL", "postgres://localhost:5432/audit")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/audit", cfg.Audit.DSN)
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/subs")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEBHOOK_SIGNING_SECRET", "whsec_1")
	t.Setenv("WEBHOOK_DEBUG", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "whsec_1", cfg.Webhook.SigningSecret)
	assert.True(t, cfg.Webhook.Debug)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestHasWebhookAuth(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasWebhookAuth())

	cfg.Webhook.SigningSecret = "whsec_1"
	assert.True(t, cfg.HasWebhookAuth())

	cfg = &Config{}
	cfg.Webhook.FixedToken = "tok"
	assert.True(t, cfg.HasWebhookAuth())
}
