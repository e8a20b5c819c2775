package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the TUI app. Flags fill it first,
// then PAIRPLAY_* environment variables override.
type Config struct {
	Debug      bool   `env:"PAIRPLAY_DEBUG"`
	LogPath    string `env:"PAIRPLAY_LOG"`
	DataDir    string `env:"PAIRPLAY_DATA_DIR"`
	CatalogURL string `env:"PAIRPLAY_CATALOG_URL"`
	ASCIIOnly  bool   `env:"PAIRPLAY_ASCII"`
	Ads        AdsConfig
	UI         UIConfig `envPrefix:"PAIRPLAY_UI_"`
}

type AdsConfig struct {
	Enabled   bool `env:"PAIRPLAY_ADS"`
	LatencyMS int  `env:"PAIRPLAY_ADS_LATENCY_MS"`
}

type UIConfig struct {
	ThemeVariant string `env:"THEME"`
	MotionLevel  string `env:"MOTION"`
}

func DefaultConfig() Config {
	return Config{
		Ads: AdsConfig{Enabled: true, LatencyMS: 300},
		UI: UIConfig{
			ThemeVariant: "light",
			MotionLevel:  "full",
		},
	}
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.UI.ThemeVariant {
	case "", "light", "dark":
	default:
		return fmt.Errorf("invalid ui theme variant %q", c.UI.ThemeVariant)
	}
	if c.UI.ThemeVariant == "" {
		c.UI.ThemeVariant = "light"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	if c.Ads.LatencyMS < 0 {
		return fmt.Errorf("invalid ads latency %d", c.Ads.LatencyMS)
	}
	if c.Ads.LatencyMS == 0 {
		c.Ads.LatencyMS = 300
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "pairplay")
	}

	return nil
}
