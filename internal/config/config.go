package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "SIDENAV_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SIDENAV_*). A double underscore separates
// nested keys: SIDENAV_SERVE__PORT sets serve.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	h := c.Headings
	if !validHeadingTags[strings.ToLower(h.SectionTag)] {
		return fmt.Errorf("invalid headings.section_tag %q: must be one of h1..h6", h.SectionTag)
	}
	if !validHeadingTags[strings.ToLower(h.ItemTag)] {
		return fmt.Errorf("invalid headings.item_tag %q: must be one of h1..h6", h.ItemTag)
	}
	if strings.EqualFold(h.SectionTag, h.ItemTag) {
		return fmt.Errorf("headings.section_tag and headings.item_tag must differ")
	}

	switch c.Orphans {
	case OrphanReject, OrphanDrop:
	default:
		return fmt.Errorf("invalid orphans %q: must be one of reject, drop", c.Orphans)
	}

	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port must be between 0 and 65535")
	}

	return nil
}
