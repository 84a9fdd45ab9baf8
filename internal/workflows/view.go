package workflows

import (
	"context"
	"fmt"
	"io"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	"github.com/PolarWolf314/helm-secrets/internal/secrets"
)

// ViewOptions configures the view workflow.
type ViewOptions struct {
	// Path is the encrypted secrets file.
	Path string

	// Out receives the decrypted content as YAML.
	Out io.Writer
}

// View writes the decrypted content of a secrets file to opts.Out. Nothing
// is written to disk.
//
// Returns ErrFileNotFound if the file does not exist.
func View(ctx context.Context, deps *Deps, opts ViewOptions) (err error) {
	entry := audit.NewEntry("view")
	entry.Files = []string{opts.Path}
	defer func() { deps.Trail.Record(entry, err) }()

	if err := requireFile(opts.Path); err != nil {
		return err
	}

	if err := deps.Sops.View(ctx, opts.Path, secrets.FormatOf(opts.Path), opts.Out); err != nil {
		return fmt.Errorf("failed to view %s: %w", opts.Path, err)
	}
	return nil
}
