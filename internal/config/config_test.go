package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ContentDir != "docs" {
		t.Errorf("expected default content_dir %q, got %q", "docs", cfg.ContentDir)
	}
	if cfg.Headings.SectionTag != "h2" || cfg.Headings.ItemTag != "h3" {
		t.Errorf("expected h2/h3 heading levels, got %s/%s", cfg.Headings.SectionTag, cfg.Headings.ItemTag)
	}
	if cfg.Orphans != OrphanReject {
		t.Errorf("expected default orphans %q, got %q", OrphanReject, cfg.Orphans)
	}
	if len(cfg.Wasm.Excludes) != 3 {
		t.Errorf("expected 3 default wasm excludes, got %d", len(cfg.Wasm.Excludes))
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.sidenav.yml")

	original := DefaultConfig()
	original.ContentDir = "handbook"
	original.ProjectName = "Handbook"
	original.Headings.SectionTag = "h1"
	original.Headings.ItemTag = "h2"
	original.Orphans = OrphanDrop
	original.Serve.Port = 9000
	original.Include = []string{"**/*.md", "**/*.markdown"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ContentDir != original.ContentDir {
		t.Errorf("content_dir: got %q, want %q", loaded.ContentDir, original.ContentDir)
	}
	if loaded.ProjectName != original.ProjectName {
		t.Errorf("project_name: got %q, want %q", loaded.ProjectName, original.ProjectName)
	}
	if loaded.Headings != original.Headings {
		t.Errorf("headings: got %+v, want %+v", loaded.Headings, original.Headings)
	}
	if loaded.Orphans != original.Orphans {
		t.Errorf("orphans: got %q, want %q", loaded.Orphans, original.Orphans)
	}
	if loaded.Serve.Port != original.Serve.Port {
		t.Errorf("serve.port: got %d, want %d", loaded.Serve.Port, original.Serve.Port)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.OutputDir != "site" {
		t.Errorf("expected default output_dir, got %q", cfg.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SIDENAV_PROJECT_NAME", "Overridden")
	t.Setenv("SIDENAV_SERVE__PORT", "9191")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ProjectName != "Overridden" {
		t.Errorf("env override failed: got %q, want %q", loaded.ProjectName, "Overridden")
	}
	if loaded.Serve.Port != 9191 {
		t.Errorf("nested env override failed: got %d, want 9191", loaded.Serve.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty content dir", func(c *Config) { c.ContentDir = "" }, false},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, false},
		{"bad section tag", func(c *Config) { c.Headings.SectionTag = "div" }, false},
		{"bad item tag", func(c *Config) { c.Headings.ItemTag = "h7" }, false},
		{"same tags", func(c *Config) { c.Headings.ItemTag = "H2" }, false},
		{"unknown orphan policy", func(c *Config) { c.Orphans = "attach" }, false},
		{"drop orphans", func(c *Config) { c.Orphans = OrphanDrop }, true},
		{"negative port", func(c *Config) { c.Serve.Port = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid config, got: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"drafts/**", []string{"drafts/**"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
