package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// contentDirCandidates are directories commonly holding markdown docs, in
// order of preference.
var contentDirCandidates = []string{"docs", "doc", "documentation", "content"}

// detectContentDir returns the first existing well-known docs directory.
func detectContentDir() string {
	for _, dir := range contentDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "docs"
}

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to sidenav! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()

	contentPrompt := promptui.Prompt{
		Label:   "Markdown content directory",
		Default: detectContentDir(),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = contentDir

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	namePrompt := promptui.Prompt{
		Label:   "Project name",
		Default: cfg.ProjectName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("project name: %w", err)
	}
	cfg.ProjectName = name

	levelPrompt := promptui.Select{
		Label: "Sidebar heading levels",
		Items: []string{
			"h2 / h3: sections and sub-items",
			"h1 / h2: top-level pages with sections",
		},
	}
	levelIdx, _, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("heading levels: %w", err)
	}
	if levelIdx == 1 {
		cfg.Headings.SectionTag, cfg.Headings.ItemTag = "h1", "h2"
	}

	orphanPrompt := promptui.Select{
		Label: "Sub-headings before the first section",
		Items: []string{
			"reject: fail the build",
			"drop: leave them out of the sidebar",
		},
	}
	orphanIdx, _, err := orphanPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("orphan policy: %w", err)
	}
	cfg.Orphans = []OrphanPolicy{OrphanReject, OrphanDrop}[orphanIdx]

	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if extra := splitAndTrim(excludeStr); len(extra) > 0 {
		cfg.Exclude = append(append([]string{}, DefaultExcludes...), extra...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
