package wasmtest

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ziadkadry99/sidenav/internal/logging"
	"github.com/ziadkadry99/sidenav/internal/progress"
	"github.com/ziadkadry99/sidenav/internal/walker"
)

// Runner executes test binaries sequentially on a Runtime.
type Runner struct {
	Runtime  Runtime
	Excludes []string // doublestar patterns matched against base names
	Logger   *zap.Logger
	Reporter progress.Reporter
}

// Result summarizes a run.
type Result struct {
	Code    int      // exit code for the whole run
	Ran     []string // binaries that were executed
	Skipped []string // binaries matching an exclude pattern
	Failed  string   // binary whose exit code stopped the run
}

// Run executes paths in order. Excluded binaries are skipped. The first
// non-zero exit code ends the run and becomes Result.Code. A binary that
// cannot be compiled, instantiated or run ends the run with ExitFailure and
// the error.
func (r *Runner) Run(ctx context.Context, paths []string) (Result, error) {
	logger := logging.OrNop(r.Logger)
	reporter := r.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	var res Result
	reporter.Start(len(paths))
	defer reporter.Finish()

	for i, path := range paths {
		base := filepath.Base(path)
		if walker.MatchesAny(base, r.Excludes) {
			logger.Debug("skipping excluded binary", zap.String("path", path))
			res.Skipped = append(res.Skipped, path)
			reporter.Update(i+1, base)
			continue
		}

		code, err := r.runOne(ctx, path)
		res.Ran = append(res.Ran, path)
		reporter.Update(i+1, base)
		if err != nil {
			logger.Error("test binary failed to run", zap.String("path", path), zap.Error(err))
			res.Code = ExitFailure
			res.Failed = path
			return res, err
		}
		if code != ExitSuccess {
			logger.Info("test binary failed", zap.String("path", path), zap.Int("code", code))
			res.Code = code
			res.Failed = path
			return res, nil
		}
		logger.Debug("test binary passed", zap.String("path", path))
	}

	res.Code = ExitSuccess
	return res, nil
}

func (r *Runner) runOne(ctx context.Context, path string) (int, error) {
	mod, err := r.Runtime.Compile(ctx, path)
	if err != nil {
		return ExitFailure, fmt.Errorf("compile %s: %w", path, err)
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return ExitFailure, fmt.Errorf("instantiate %s: %w", path, err)
	}
	code, err := inst.Run(ctx)
	if err != nil {
		return ExitFailure, fmt.Errorf("run %s: %w", path, err)
	}
	return code, nil
}
