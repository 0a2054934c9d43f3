package driver

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// Executor runs a textual LLVM IR module to completion and reports the
// exit code main returned. llir/llvm has no JIT of its own, so the
// default implementation shells out to LLVM's lli interpreter — the
// closest equivalent to "load IR, verify, execute main" available
// without hand-rolling JIT bindings.
type Executor interface {
	Execute(irText string) (int, error)
}

// lliExecutor writes the module to a temp file and runs it under lli,
// passing stdin/stdout through unchanged so Input/Print behave the way
// an embedded JIT would. lli's stderr is captured: it is included in
// the error when lli cannot be run, and discarded when lli runs and
// exits with a status.
type lliExecutor struct {
	path string
}

func newLLIExecutor(path string) *lliExecutor {
	return &lliExecutor{path: path}
}

func (e *lliExecutor) Execute(irText string) (int, error) {
	tmp, err := os.CreateTemp("", "tough-*.ll")
	if err != nil {
		return 0, fmt.Errorf("creating temp IR file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(irText); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("writing temp IR file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing temp IR file: %w", err)
	}

	cmd := exec.Command(e.path, tmp.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return 0, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("running lli: %w: %s", err, stderr.String())
}
