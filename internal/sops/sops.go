// Package sops invokes the sops binary to encrypt, decrypt, view and edit
// secrets files.
//
// Each call runs sops in the directory of the file it operates on, so the
// nearest .sops.yaml creation rules apply without changing the working
// directory of helm-secrets itself. Paths are made absolute first.
package sops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/PolarWolf314/helm-secrets/internal/runner"
	"github.com/PolarWolf314/helm-secrets/internal/secrets"
)

// Client runs sops through a runner.Runner.
type Client struct {
	// Command is the sops executable followed by any fixed arguments.
	Command []string
	Runner  runner.Runner
}

// New returns a Client invoking command, or plain "sops" when command is empty.
func New(command []string, r runner.Runner) *Client {
	if len(command) == 0 {
		command = []string{"sops"}
	}
	return &Client{Command: command, Runner: r}
}

// Encrypt encrypts path in place. Input and output keep the file's own format.
func (c *Client) Encrypt(ctx context.Context, path string, format secrets.Format) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	inv := c.invocation(abs,
		"--encrypt",
		"--input-type", string(format),
		"--output-type", string(format),
		"--in-place", abs,
	)
	inv.Stderr = os.Stderr
	return c.Runner.Run(ctx, inv)
}

// Decrypt decrypts path into dest, keeping the file's format. A failed run
// leaves no dest behind.
func (c *Client) Decrypt(ctx context.Context, path string, format secrets.Format, dest string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return err
	}

	inv := c.invocation(abs,
		"--decrypt",
		"--input-type", string(format),
		"--output-type", string(format),
		"--output", absDest,
		abs,
	)
	inv.Stderr = os.Stderr

	if err := c.Runner.Run(ctx, inv); err != nil {
		if rmErr := os.Remove(absDest); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return errors.Join(err, fmt.Errorf("removing partial %s: %w", absDest, rmErr))
		}
		return err
	}
	return nil
}

// View writes the decrypted content of path to w, always rendered as YAML.
// Nothing is written to disk.
func (c *Client) View(ctx context.Context, path string, format secrets.Format, w io.Writer) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	inv := c.invocation(abs,
		"--decrypt",
		"--input-type", string(format),
		"--output-type", string(secrets.FormatYAML),
		abs,
	)
	inv.Stdout = w
	inv.Stderr = os.Stderr
	return c.Runner.Run(ctx, inv)
}

// Edit opens path in the sops editor attached to the terminal. sops
// re-encrypts the file itself when the editor exits cleanly. Edit returns
// only once that session is over.
func (c *Client) Edit(ctx context.Context, path string, format secrets.Format) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	inv := c.invocation(abs,
		"--input-type", string(format),
		"--output-type", string(format),
		abs,
	)
	return c.Runner.Run(ctx, runner.Interactive(inv))
}

func (c *Client) invocation(absPath string, args ...string) runner.Invocation {
	return runner.Invocation{
		Command: append(slices.Clone(c.Command), args...),
		Dir:     filepath.Dir(absPath),
	}
}
