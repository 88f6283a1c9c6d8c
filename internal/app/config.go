package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const defaultBaseURL = "http://localhost:8000/api"

// Config holds the complete client configuration, loadable from environment
// variables (CARDAPIO_ prefix) or YAML config files. Command-line flags
// belong to the subcommands, so the loader skips flag binding.
type Config struct {
	BaseURL  string `default:"http://localhost:8000/api" usage:"API base URL, including the /api prefix"`
	StateDir string `usage:"Directory for persisted local state (defaults to the user config dir)"`
	// PublicURL is the customer-facing menu address printed on table QR
	// links. Empty derives it from BaseURL.
	PublicURL string        `usage:"Public menu URL for printed table links"`
	Timeout   time.Duration `default:"15s" usage:"Per-request API timeout"`
	Poll      PollConfig
}

// PollConfig controls the two fallback polling cadences.
type PollConfig struct {
	Order     time.Duration `default:"5s"  usage:"Customer order status poll interval"`
	Dashboard time.Duration `default:"10s" usage:"Staff dashboard fallback poll interval"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies defaults that need the runtime environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CARDAPIO",
		SkipFlags: true,
		Files:     []string{"config.yaml", "/etc/cardapio/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve user config dir")
		}
		cfg.StateDir = filepath.Join(base, "cardapio")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps the plain API_URL environment variable used by
// hosting platforms onto the CARDAPIO_-prefixed configuration. An explicit
// CARDAPIO_BASE_URL always wins.
func (c *Config) applyPlatformDefaults() {
	if c.BaseURL == defaultBaseURL {
		if v := os.Getenv("API_URL"); v != "" {
			c.BaseURL = v
		}
	}
}
