package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// secret long enough to satisfy the min=32 constraint
const testJWTSecret = "0123456789abcdef0123456789abcdef"

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MNEMO_DATABASE_URL", "postgres://localhost:5432/mnemo_test")
	t.Setenv("MNEMO_AUTH_JWT_SECRET", testJWTSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/mnemo_test", cfg.Database.URL)
	assert.Equal(t, testJWTSecret, cfg.Auth.JWTSecret)

	// Defaults fill everything not set explicitly.
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 100, cfg.Task.QueueSize)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("MNEMO_DATABASE_URL", "postgres://localhost:5432/mnemo_test")
	t.Setenv("MNEMO_AUTH_JWT_SECRET", testJWTSecret)
	t.Setenv("MNEMO_SERVER_PORT", "9999")
	t.Setenv("MNEMO_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestLoadValidation(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing database url",
			env: map[string]string{
				"MNEMO_AUTH_JWT_SECRET": testJWTSecret,
			},
		},
		{
			name: "jwt secret too short",
			env: map[string]string{
				"MNEMO_DATABASE_URL":    "postgres://localhost:5432/mnemo_test",
				"MNEMO_AUTH_JWT_SECRET": "short",
			},
		},
		{
			name: "invalid log level",
			env: map[string]string{
				"MNEMO_DATABASE_URL":     "postgres://localhost:5432/mnemo_test",
				"MNEMO_AUTH_JWT_SECRET":  testJWTSecret,
				"MNEMO_SERVER_LOG_LEVEL": "verbose",
			},
		},
		{
			name: "invalid port",
			env: map[string]string{
				"MNEMO_DATABASE_URL":    "postgres://localhost:5432/mnemo_test",
				"MNEMO_AUTH_JWT_SECRET": testJWTSecret,
				"MNEMO_SERVER_PORT":     "70000",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
