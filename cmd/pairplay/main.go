package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pairplay/internal/app"
)

func main() {
	cfg := app.DefaultConfig()
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	flag.StringVar(&cfg.LogPath, "log", cfg.LogPath, "write a JSON log to this path")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "override the save-data directory")
	flag.StringVar(&cfg.CatalogURL, "catalog-url", cfg.CatalogURL, "fetch level data from this URL instead of the bundled set")
	flag.BoolVar(&cfg.ASCIIOnly, "ascii", cfg.ASCIIOnly, "render without emoji or box-drawing characters")
	flag.BoolVar(&cfg.Ads.Enabled, "ads", cfg.Ads.Enabled, "enable the simulated ad breaks")
	flag.StringVar(&cfg.UI.ThemeVariant, "theme", cfg.UI.ThemeVariant, "ui theme: light or dark")
	flag.StringVar(&cfg.UI.MotionLevel, "motion", cfg.UI.MotionLevel, "animation level: full, reduced, or off")
	flag.Parse()

	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "pairplay:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "pairplay:", err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pairplay:", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "pairplay:", err)
		os.Exit(1)
	}
}
