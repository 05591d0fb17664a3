package cmd

import (
	"fmt"

	"github.com/ziadkadry99/sidenav/internal/config"
	"github.com/ziadkadry99/sidenav/internal/heading"
	"github.com/ziadkadry99/sidenav/internal/progress"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
	"github.com/ziadkadry99/sidenav/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sidenav init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// selectorFromConfig returns the heading selector configured in cfg.
func selectorFromConfig(cfg *config.Config) heading.Selector {
	return heading.Selector{
		ContainerID: cfg.Headings.Container,
		SectionTag:  cfg.Headings.SectionTag,
		ItemTag:     cfg.Headings.ItemTag,
	}
}

// orphanPolicy maps the configured orphan policy onto the sidebar's.
func orphanPolicy(cfg *config.Config) sidebar.OrphanPolicy {
	if cfg.Orphans == config.OrphanDrop {
		return sidebar.OrphanDrop
	}
	return sidebar.OrphanReject
}

// newGenerator creates a site generator from cfg.
func newGenerator(cfg *config.Config) *site.Generator {
	gen := site.NewGenerator(cfg.ContentDir, cfg.OutputDir, cfg.ProjectName)
	gen.LogoPath = cfg.Logo
	gen.Include = cfg.Include
	gen.Exclude = cfg.Exclude
	gen.Selector = selectorFromConfig(cfg)
	gen.Orphans = orphanPolicy(cfg)
	gen.Logger = logger
	gen.Reporter = progress.NewReporter("Building site")
	return gen
}
