package wasmtest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// wasmMagic starts every WebAssembly binary module.
var wasmMagic = []byte{0x00, 'a', 's', 'm'}

// NodeRuntime runs test binaries with Node.js and the Go distribution's
// wasm_exec_node.js support script.
type NodeRuntime struct {
	Node       string // node executable; "node" when empty
	ExecScript string // path to wasm_exec_node.js; located via GOROOT when empty
	Stdout     io.Writer
	Stderr     io.Writer
}

type nodeModule struct {
	rt     *NodeRuntime
	path   string
	script string
}

type nodeInstance struct {
	cmd *exec.Cmd
}

// Compile checks that path is a WebAssembly module and resolves the support
// script that will run it.
func (rt *NodeRuntime) Compile(ctx context.Context, path string) (Module, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("wasmtest: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(wasmMagic))
	if _, err := io.ReadFull(f, header); err != nil || !bytes.Equal(header, wasmMagic) {
		return nil, fmt.Errorf("%w: %s", ErrNotWasm, path)
	}

	script, err := rt.execScript(ctx)
	if err != nil {
		return nil, err
	}
	return &nodeModule{rt: rt, path: abs, script: script}, nil
}

// Instantiate prepares the node process. The binary runs from its own
// directory so tests can open files by relative path.
func (m *nodeModule) Instantiate(ctx context.Context) (Instance, error) {
	node := m.rt.Node
	if node == "" {
		node = "node"
	}
	cmd := exec.CommandContext(ctx, node, m.script, filepath.Base(m.path))
	cmd.Dir = filepath.Dir(m.path)
	cmd.Stdout = writerOr(m.rt.Stdout, os.Stdout)
	cmd.Stderr = writerOr(m.rt.Stderr, os.Stderr)
	return &nodeInstance{cmd: cmd}, nil
}

// Run starts the process and waits for its exit code.
func (i *nodeInstance) Run(ctx context.Context) (int, error) {
	err := i.cmd.Run()
	if err == nil {
		return ExitSuccess, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return exitErr.ExitCode(), nil
	}
	if ctx.Err() != nil {
		return ExitFailure, ctx.Err()
	}
	return ExitFailure, fmt.Errorf("wasmtest: running %s: %w", i.cmd.Args[len(i.cmd.Args)-1], err)
}

// execScript returns the absolute path of wasm_exec_node.js.
func (rt *NodeRuntime) execScript(ctx context.Context) (string, error) {
	if rt.ExecScript != "" {
		return filepath.Abs(rt.ExecScript)
	}
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return "", fmt.Errorf("wasmtest: locating GOROOT: %w", err)
	}
	root := strings.TrimSpace(string(out))
	// Go 1.24 moved the support files from misc/wasm to lib/wasm.
	for _, dir := range []string{"lib", "misc"} {
		p := filepath.Join(root, dir, "wasm", "wasm_exec_node.js")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("wasmtest: wasm_exec_node.js not found under %s", root)
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
