package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CARDAPIO_STATE_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Poll.Order)
	assert.Equal(t, 10*time.Second, cfg.Poll.Dashboard)
}

func TestLoadConfig_PlatformBaseURLFallback(t *testing.T) {
	t.Setenv("CARDAPIO_STATE_DIR", t.TempDir())
	t.Setenv("API_URL", "https://hosted.example.com/api")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://hosted.example.com/api", cfg.BaseURL)

	// The prefixed variable always wins over the platform one.
	t.Setenv("CARDAPIO_BASE_URL", "https://explicit.example.com/api")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://explicit.example.com/api", cfg.BaseURL)
}
