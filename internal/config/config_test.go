package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DASHBOARD_ADDR", "")
	t.Setenv("DASHBOARD_DATA", "")

	cfg := Load("")
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "historical_automobile_sales.csv", cfg.DataPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DASHBOARD_ADDR", ":3000")
	t.Setenv("DASHBOARD_DATA", "/data/sales.csv")

	cfg := Load("")
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "/data/sales.csv", cfg.DataPath)
}

func TestLoadEnvFile(t *testing.T) {
	// godotenv never overrides variables already present, so clear them.
	t.Setenv("DASHBOARD_ADDR", "")
	os.Unsetenv("DASHBOARD_ADDR")

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DASHBOARD_ADDR=:9999\n"), 0o644))

	cfg := Load(envFile)
	assert.Equal(t, ":9999", cfg.Addr)
}
