package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsFromEnvOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/nexskill")
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, int64(10<<20), cfg.Uploads.MaxBytes)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.RequireToken)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	path := writeConfig(t, `
port: "8080"
database:
  driver: sqlite
  url: file:nexskill.db
uploads:
  dir: /var/nexskill/uploads
auth:
  session_secret: `+testSecret+`
  require_token: false
cors_origins:
  - https://nexskill.example
`)
	t.Setenv("PORT", "9090")
	t.Setenv("REQUIRE_TOKEN", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/var/nexskill/uploads", cfg.Uploads.Dir)
	assert.True(t, cfg.Auth.RequireToken)
	assert.Equal(t, []string{"https://nexskill.example"}, cfg.CORSOrigins)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{"SESSION_SECRET": testSecret}},
		{name: "short secret", env: map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "short"}},
		{name: "unknown driver", env: map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": testSecret, "DATABASE_DRIVER": "mongo"}},
		{name: "bad bool", env: map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": testSecret, "REQUIRE_TOKEN": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			assert.Error(t, err)
		})
	}
}
