package config

// DefaultExcludes are glob patterns excluded from the content walk by default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"_*/**",
	"drafts/**",
}

// DefaultWasmExcludes are test binaries that cannot run under the js/wasm
// runtime and are skipped by the harness.
var DefaultWasmExcludes = []string{
	"nodot.test",
	"remote.test",
	"integration.test",
}

// validHeadingTags lists the tags a heading level may be bound to.
var validHeadingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ContentDir:  "docs",
		OutputDir:   "site",
		ProjectName: "Documentation",
		Include:     []string{"**/*.md"},
		Exclude:     DefaultExcludes,
		Headings: HeadingConfig{
			Container:  "content",
			SectionTag: "h2",
			ItemTag:    "h3",
		},
		Orphans: OrphanReject,
		Serve: ServeConfig{
			Port:  8080,
			Watch: true,
		},
		Wasm: WasmConfig{
			Node:     "node",
			Excludes: DefaultWasmExcludes,
		},
	}
}
