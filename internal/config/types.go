package config

// OrphanPolicy controls what happens to item-level headings that appear
// before any section heading.
type OrphanPolicy string

const (
	OrphanReject OrphanPolicy = "reject"
	OrphanDrop   OrphanPolicy = "drop"
)

// Config is the top-level sidenav configuration, corresponding to .sidenav.yml.
type Config struct {
	ContentDir  string        `yaml:"content_dir" koanf:"content_dir"`
	OutputDir   string        `yaml:"output_dir" koanf:"output_dir"`
	ProjectName string        `yaml:"project_name" koanf:"project_name"`
	Logo        string        `yaml:"logo" koanf:"logo"`
	Include     []string      `yaml:"include" koanf:"include"`
	Exclude     []string      `yaml:"exclude" koanf:"exclude"`
	Headings    HeadingConfig `yaml:"headings" koanf:"headings"`
	Orphans     OrphanPolicy  `yaml:"orphans" koanf:"orphans"`
	Serve       ServeConfig   `yaml:"serve" koanf:"serve"`
	Wasm        WasmConfig    `yaml:"wasm" koanf:"wasm"`
}

// HeadingConfig selects which rendered headings feed the sidebar.
type HeadingConfig struct {
	Container  string `yaml:"container" koanf:"container"`
	SectionTag string `yaml:"section_tag" koanf:"section_tag"`
	ItemTag    string `yaml:"item_tag" koanf:"item_tag"`
}

// ServeConfig holds settings for the local preview server.
type ServeConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	Open     bool `yaml:"open" koanf:"open"`
	Watch    bool `yaml:"watch" koanf:"watch"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// WasmConfig holds settings for the WebAssembly test harness.
type WasmConfig struct {
	Node       string   `yaml:"node" koanf:"node"`
	ExecScript string   `yaml:"exec_script" koanf:"exec_script"`
	Excludes   []string `yaml:"excludes" koanf:"excludes"`
}
