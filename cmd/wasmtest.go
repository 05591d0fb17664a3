package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sidenav/internal/config"
	"github.com/ziadkadry99/sidenav/internal/progress"
	"github.com/ziadkadry99/sidenav/internal/wasmtest"
)

var wasmtestCmd = &cobra.Command{
	Use:   "wasmtest <binary>...",
	Short: "Run js/wasm test binaries under Node.js",
	Long: `Runs each compiled js/wasm test binary in turn from its own directory.
Binaries matching wasm.excludes are skipped. The first failing binary stops
the run and its exit code becomes the exit code of the command.

  GOOS=js GOARCH=wasm go test -c -o pkg.test ./pkg
  sidenav wasmtest pkg.test`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWasmtest,
}

func init() {
	wasmtestCmd.Flags().StringSlice("exclude", nil, "additional base-name patterns to skip")
	rootCmd.AddCommand(wasmtestCmd)
}

func runWasmtest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return &ExitError{Code: wasmtest.ExitFailure, Err: err}
	}
	extra, _ := cmd.Flags().GetStringSlice("exclude")

	runner := &wasmtest.Runner{
		Runtime: &wasmtest.NodeRuntime{
			Node:       cfg.Wasm.Node,
			ExecScript: cfg.Wasm.ExecScript,
		},
		Excludes: append(append([]string{}, cfg.Wasm.Excludes...), extra...),
		Logger:   logger,
		Reporter: progress.Nop{},
	}

	res, err := runner.Run(cmd.Context(), args)
	if err != nil {
		return &ExitError{Code: res.Code, Err: err}
	}
	if res.Code != wasmtest.ExitSuccess {
		return &ExitError{Code: res.Code, Err: fmt.Errorf("%s exited with status %d", res.Failed, res.Code)}
	}
	fmt.Printf("%d passed, %d skipped\n", len(res.Ran), len(res.Skipped))
	return nil
}
