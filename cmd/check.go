package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/site"
	"github.com/ziadkadry99/sidenav/internal/walker"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lint headings and verify anchor links",
	Long: `Checks that no section or item heading contains markdown formatting
characters, then builds the site and verifies that every link with a fragment
resolves to an element of its target page.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("skip-links", false, "only lint headings, do not build the site")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: cfg.ContentDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return err
	}

	problems, err := site.CheckHeadings(files, selectorFromConfig(cfg))
	if err != nil {
		return err
	}

	if skip, _ := cmd.Flags().GetBool("skip-links"); !skip {
		if _, err := newGenerator(cfg).Generate(cmd.Context()); err != nil {
			return fmt.Errorf("generating site: %w", err)
		}
		linkProblems, err := site.CheckLinks(cfg.OutputDir)
		if err != nil {
			return err
		}
		problems = append(problems, linkProblems...)
	}

	for _, p := range problems {
		fmt.Println(p)
	}
	if len(problems) > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d problems found", len(problems))}
	}
	fmt.Printf("%d pages checked, no problems found\n", len(files))
	return nil
}
