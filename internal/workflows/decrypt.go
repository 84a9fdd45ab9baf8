package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	"github.com/PolarWolf314/helm-secrets/internal/secrets"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Path is the encrypted secrets file.
	Path string
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	Path string

	// DecryptedPath is the sibling written, empty when NotEncrypted.
	DecryptedPath string

	// NotEncrypted is set when the file carried no sops metadata; nothing
	// was written.
	NotEncrypted bool
}

// Decrypt writes the decrypted content of a secrets file to its decrypted
// sibling, replacing any previous one.
//
// Returns ErrFileNotFound if the file does not exist.
func Decrypt(ctx context.Context, deps *Deps, opts DecryptOptions) (result *DecryptResult, err error) {
	entry := audit.NewEntry("dec")
	entry.Files = []string{opts.Path}
	defer func() { deps.Trail.Record(entry, err) }()

	if err := requireFile(opts.Path); err != nil {
		return nil, err
	}

	encrypted, err := secrets.IsEncrypted(opts.Path)
	if err != nil {
		return nil, err
	}

	result = &DecryptResult{Path: opts.Path}
	if !encrypted {
		deps.Logger.Infof("%s is not encrypted", opts.Path)
		result.NotEncrypted = true
		return result, nil
	}

	dest := secrets.DecryptedPath(opts.Path, deps.Suffix)
	deps.Logger.Infof("Decrypting %s into %s", opts.Path, dest)
	if err := deps.Sops.Decrypt(ctx, opts.Path, secrets.FormatOf(opts.Path), dest); err != nil {
		return nil, fmt.Errorf("failed to decrypt %s: %w", opts.Path, err)
	}

	result.DecryptedPath = dest
	return result, nil
}
