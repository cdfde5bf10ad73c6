package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverJSON, cfg.StorageDriver)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "Khattak MART", cfg.StoreName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
