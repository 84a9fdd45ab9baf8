package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	"github.com/PolarWolf314/helm-secrets/internal/secrets"
)

// EditOptions configures the edit workflow.
type EditOptions struct {
	// Path is the secrets file to edit. It must exist.
	Path string
}

// Edit opens a secrets file in the sops editor and waits for the session to
// end. sops re-encrypts the file on a clean exit.
//
// Returns ErrFileNotFound if the file does not exist.
func Edit(ctx context.Context, deps *Deps, opts EditOptions) (err error) {
	entry := audit.NewEntry("edit")
	entry.Files = []string{opts.Path}
	defer func() { deps.Trail.Record(entry, err) }()

	if err := requireFile(opts.Path); err != nil {
		return err
	}

	if err := deps.Sops.Edit(ctx, opts.Path, secrets.FormatOf(opts.Path)); err != nil {
		return fmt.Errorf("failed to edit %s: %w", opts.Path, err)
	}
	return nil
}
