package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/heading"
	"github.com/ziadkadry99/sidenav/internal/navigator"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
	"github.com/ziadkadry99/sidenav/internal/walker"
)

var sidebarCmd = &cobra.Command{
	Use:   "sidebar <file>",
	Short: "Print the sidebar navigation of a markdown or HTML page",
	Long: `Reads a markdown or HTML page and prints the sidebar built from its
headings. With --top, heading offsets describe a scroll position and the
heading at the top of the viewport is highlighted.

  sidenav sidebar docs/index.md --height 800 --top intro=-10 --top usage=50`,
	Args: cobra.ExactArgs(1),
	RunE: runSidebar,
}

func init() {
	sidebarCmd.Flags().Bool("json", false, "print the navigation as JSON")
	sidebarCmd.Flags().Int("height", 800, "viewport height for --top")
	sidebarCmd.Flags().StringToInt("top", nil, "heading offset from the viewport top, as id=px (repeatable)")
	rootCmd.AddCommand(sidebarCmd)
}

func runSidebar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	headings, err := readHeadings(args[0], selectorFromConfig(cfg))
	if err != nil {
		return err
	}
	nav, err := sidebar.Build(headings, sidebar.WithOrphanPolicy(orphanPolicy(cfg)))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	tops, _ := cmd.Flags().GetStringToInt("top")
	if len(tops) > 0 {
		height, _ := cmd.Flags().GetInt("height")
		vp := &navigator.StaticViewport{H: float64(height), Tops: make(map[string]float64, len(tops))}
		for id, top := range tops {
			vp.Tops[id] = float64(top)
		}
		n := navigator.New(nav, headings, vp, &navigator.ManualScheduler{}, navigator.WithLogger(logger))
		if err := n.Sync(); err != nil {
			return err
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(nav)
	}
	return nav.Render(os.Stdout)
}

// readHeadings extracts sidebar headings from a markdown or HTML file.
func readHeadings(path string, sel heading.Selector) ([]heading.Heading, error) {
	if walker.IsMarkdown(path) {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return heading.FromMarkdown(src, sel), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return heading.FromHTML(f, sel)
	default:
		return nil, fmt.Errorf("%s: expected a markdown or HTML file", path)
	}
}
