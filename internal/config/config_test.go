package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NATS_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, DriverFile, cfg.QValue.Driver)
	assert.Equal(t, FlushSync, cfg.QValue.FlushMode)
	assert.InDelta(t, 0.1, cfg.Bandit.Epsilon, 1e-12)
	assert.InDelta(t, 0.1, cfg.Bandit.LearningRate, 1e-12)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Empty(t, cfg.App.NatsURL)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BANDIT_EPSILON", "0")
	t.Setenv("BANDIT_LEARNING_RATE", "0.5")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("QVALUE_STORE_DRIVER", "sqlite")
	t.Setenv("QVALUE_FLUSH_MODE", "async")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Bandit.Epsilon)
	assert.InDelta(t, 0.5, cfg.Bandit.LearningRate, 1e-12)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, DriverSQLite, cfg.QValue.Driver)
	assert.Equal(t, FlushAsync, cfg.QValue.FlushMode)
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"epsilon above one", map[string]string{"BANDIT_EPSILON": "1.5"}},
		{"negative epsilon", map[string]string{"BANDIT_EPSILON": "-0.1"}},
		{"zero learning rate", map[string]string{"BANDIT_LEARNING_RATE": "0"}},
		{"unknown driver", map[string]string{"QVALUE_STORE_DRIVER": "mongo"}},
		{"gorm without dsn", map[string]string{"QVALUE_STORE_DRIVER": "gorm", "DB_CONNECTION_STRING": ""}},
		{"unknown flush mode", map[string]string{"QVALUE_FLUSH_MODE": "lazy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
