package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static documentation site",
	Long:  `Renders every markdown page under content_dir into output_dir, each with its heading sidebar, plus the stylesheet, script, search index and manifest.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	result, err := newGenerator(cfg).Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	sections, items := 0, 0
	for _, p := range result.Pages {
		sections += p.Nav.SectionCount()
		items += p.Nav.ItemCount()
	}
	fmt.Printf("Static site generated: %s (%d pages, %d sections, %d items)\n",
		cfg.OutputDir, len(result.Pages), sections, items)
	return nil
}
