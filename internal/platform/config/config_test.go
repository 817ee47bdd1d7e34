package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "none.yaml"), envFrom(nil))
	require.Error(t, err, "an explicit missing file must fail")

	cfg, err = load("", envFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, AuthModeDev, cfg.Auth.Mode)
	assert.Equal(t, 30, cfg.Reminders.DefaultHorizonDays)
	assert.Equal(t, 50, cfg.Activity.DefaultLimit)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dogcare.yaml")
	yml := `
http:
  addr: ":9000"
  write_timeout: 45s
database:
  dsn: "postgres://file"
log:
  level: debug
reminders:
  default_horizon_days: 14
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := load(path, envFrom(map[string]string{
		"DB_DSN":     "postgres://env",
		"LOG_FORMAT": "json",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 45*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 14, cfg.Reminders.DefaultHorizonDays)
	// no tocados por el archivo
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestValidate_OdinRequiresBaseURL(t *testing.T) {
	cfg := Default()
	cfg.Auth.Mode = AuthModeOdin
	assert.Error(t, cfg.Validate())

	cfg.Auth.Odin.BaseURL = "https://odin.local"
	assert.NoError(t, cfg.Validate())

	cfg.Auth.Mode = "ldap"
	assert.Error(t, cfg.Validate())
}

func TestLoad_EnvPort(t *testing.T) {
	cfg, err := load("", envFrom(map[string]string{"PORT": "7070", "AUTH_MODE": "DEV"}))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, AuthModeDev, cfg.Auth.Mode)
}
