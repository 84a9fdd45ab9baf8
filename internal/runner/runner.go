// Package runner executes external tools for helm-secrets.
//
// Every subprocess (helm, sops) goes through the Runner interface so tests
// can substitute a recording fake. Calls are strictly sequential: Run
// returns only once the child has exited.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
)

// Invocation describes one subprocess run.
type Invocation struct {
	// Command is the executable followed by its arguments.
	Command []string

	// Dir is the working directory of the child. Empty means the current one.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Name returns the executable of the invocation.
func (inv Invocation) Name() string {
	if len(inv.Command) == 0 {
		return ""
	}
	return inv.Command[0]
}

// Runner runs a subprocess to completion.
//
// A child that exits non-zero yields a *errors.ToolError carrying its code.
// Any other error means the child could not be started or waited on.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// Exec runs invocations with os/exec.
type Exec struct{}

func (Exec) Run(ctx context.Context, inv Invocation) error {
	if len(inv.Command) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, inv.Command[0], inv.Command[1:]...)
	cmd.Dir = inv.Dir
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &kerrors.ToolError{Tool: inv.Name(), Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("running %s: %w", inv.Name(), err)
	}
	return nil
}

// Interactive attaches the invocation to the process's terminal.
func Interactive(inv Invocation) Invocation {
	inv.Stdin = os.Stdin
	inv.Stdout = os.Stdout
	inv.Stderr = os.Stderr
	return inv
}

// Output runs inv and returns what the child wrote to stdout.
func Output(ctx context.Context, r Runner, inv Invocation) ([]byte, error) {
	var stdout bytes.Buffer
	inv.Stdout = &stdout
	if inv.Stderr == nil {
		inv.Stderr = os.Stderr
	}
	if err := r.Run(ctx, inv); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// ExitCode extracts the exit status carried by err, or -1 when err does not
// describe a child that ran to completion.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var toolErr *kerrors.ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Code
	}
	return -1
}
