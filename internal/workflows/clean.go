package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/secrets"
	"github.com/PolarWolf314/helm-secrets/internal/utils"
)

// CleanOptions configures the clean workflow.
type CleanOptions struct {
	// Dir is searched recursively for decrypted siblings.
	Dir string

	// DryRun previews what would be removed without making changes.
	DryRun bool
}

// CleanResult contains the outcome of a clean operation.
type CleanResult struct {
	// Files lists the decrypted siblings found, sorted.
	Files []string

	// RemovedCount is the number of files removed (0 if dry-run).
	RemovedCount int

	// DryRun indicates whether this was a dry-run.
	DryRun bool
}

// Clean removes every decrypted sibling (secrets*<suffix>) below a directory.
//
// Returns ErrFileNotFound if the directory does not exist and
// ErrNotADirectory if it is a file.
func Clean(ctx context.Context, deps *Deps, opts CleanOptions) (result *CleanResult, err error) {
	entry := audit.NewEntry("clean")
	entry.DryRun = opts.DryRun
	defer func() {
		if result != nil {
			entry.Files = result.Files
			entry.RemovedCount = result.RemovedCount
		}
		deps.Trail.Record(entry, err)
	}()

	if err := requireFile(opts.Dir); err != nil {
		return nil, err
	}
	isDir, err := utils.DirExists(opts.Dir)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotADirectory, opts.Dir)
	}

	files, err := secrets.FindDecryptedFiles(opts.Dir, deps.Suffix)
	if err != nil {
		return nil, fmt.Errorf("finding decrypted files: %w", err)
	}

	result = &CleanResult{Files: files, DryRun: opts.DryRun}
	if opts.DryRun {
		return result, nil
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		deps.Logger.Infof("Removing %s", f)
		if err := removeFile(f); err != nil {
			return result, fmt.Errorf("removing %s: %w", f, err)
		}
		result.RemovedCount++
	}

	return result, nil
}
