package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Empty(t, cfg.TwelveData.APIKey)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"server": {"port": "9090", "request_timeout_sec": 3},
		"twelvedata": {"api_key": "file-key", "base_url": "https://td.example"},
		"storage": {"path": "/tmp/r.db"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 3, cfg.Server.RequestTimeoutSec)
	require.Equal(t, "file-key", cfg.TwelveData.APIKey)
	require.Equal(t, "https://td.example", cfg.TwelveData.BaseURL)
	require.Equal(t, "/tmp/r.db", cfg.Storage.Path)
	// untouched sections keep defaults
	require.Equal(t, "https://query1.finance.yahoo.com", cfg.Yahoo.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"twelvedata": {"api_key": "file-key"}}`), 0o600))

	t.Setenv("TWELVEDATA_API_KEY", "env-key")
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("YAHOO_MIN_INTERVAL_SEC", "2")
	t.Setenv("DISPLAY_CURRENCY", "cad")
	t.Setenv("REQUEST_TIMEOUT_SEC", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env-key", cfg.TwelveData.APIKey)
	require.Equal(t, "7000", cfg.Server.Port)
	require.True(t, cfg.Log.Pretty)
	require.Equal(t, 2, cfg.Yahoo.MinRequestIntervalSec)
	require.Equal(t, "CAD", cfg.Display.Currency)
	require.Equal(t, 10, cfg.Server.RequestTimeoutSec)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":`), 0o600))

	_, err := Load(path)
	require.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Server.RequestTimeoutSec = 0
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TwelveData.APIKey = "k"
	cfg.TwelveData.BaseURL = ""
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Yahoo.BaseURL = ""
	require.Error(t, cfg.Validate())
}

func TestSplitCSV(t *testing.T) {
	require.Equal(t, []string{"VOO", "QQQM", "BRK.B"}, SplitCSV(" VOO, QQQM,,BRK.B ,"))
	require.Empty(t, SplitCSV(""))
}
