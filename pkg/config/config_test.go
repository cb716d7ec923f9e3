package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port       int           `env:"TEST_CFG_PORT" envDefault:"8080"`
	SessionTTL time.Duration `env:"TEST_CFG_SESSION_TTL" envDefault:"2h"`
	Sender     string        `env:"TEST_CFG_SENDER" envDefault:"log"`
	Debug      bool          `env:"TEST_CFG_DEBUG" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "log", cfg.Sender)
	assert.False(t, cfg.Debug)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_SESSION_TTL", "15m")
	t.Setenv("TEST_CFG_DEBUG", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.Debug)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_DOTENV_SENDER=resend\nTEST_CFG_DOTENV_PORT=7070\n"), 0o600))
	t.Setenv("TEST_CFG_DOTENV_PORT", "6060")
	t.Cleanup(func() { _ = os.Unsetenv("TEST_CFG_DOTENV_SENDER") })

	var cfg struct {
		Sender string `env:"TEST_CFG_DOTENV_SENDER"`
		Port   int    `env:"TEST_CFG_DOTENV_PORT"`
	}
	require.NoError(t, Load(&cfg, path))

	assert.Equal(t, "resend", cfg.Sender)
	assert.Equal(t, 6060, cfg.Port, "process environment wins over the file")
}

func TestLoad_MissingDotenvIgnored(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg, filepath.Join(t.TempDir(), "absent.env")))
}

type requiredConfig struct {
	APIKey string `env:"TEST_CFG_API_KEY,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
