// Package wasmtest runs compiled js/wasm Go test binaries one after another
// and reports the first failing exit code.
package wasmtest

import (
	"context"
	"errors"
)

// Exit codes of a test run.
const (
	// ExitSuccess indicates every test binary passed.
	ExitSuccess = 0

	// ExitFailure indicates the harness itself failed (unreadable binary,
	// runtime missing, etc.).
	ExitFailure = 1
)

// ErrNotWasm is returned when a binary is not a WebAssembly module.
var ErrNotWasm = errors.New("wasmtest: not a WebAssembly module")

// Runtime compiles test binaries.
type Runtime interface {
	Compile(ctx context.Context, path string) (Module, error)
}

// Module is a compiled test binary.
type Module interface {
	Instantiate(ctx context.Context) (Instance, error)
}

// Instance is a runnable instantiation of a Module.
type Instance interface {
	// Run executes the binary to completion and returns its exit code. A
	// non-nil error means the binary could not be run at all.
	Run(ctx context.Context) (int, error)
}
