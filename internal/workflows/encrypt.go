package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	"github.com/PolarWolf314/helm-secrets/internal/secrets"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Path is the secrets file to encrypt in place.
	Path string
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	Path string

	// AlreadyEncrypted is set when the file carried sops metadata and was
	// left untouched.
	AlreadyEncrypted bool
}

// Encrypt encrypts a secrets file in place with sops, keeping its format.
//
// Returns ErrFileNotFound if the file does not exist.
func Encrypt(ctx context.Context, deps *Deps, opts EncryptOptions) (result *EncryptResult, err error) {
	entry := audit.NewEntry("enc")
	entry.Files = []string{opts.Path}
	defer func() { deps.Trail.Record(entry, err) }()

	if err := requireFile(opts.Path); err != nil {
		return nil, err
	}

	encrypted, err := secrets.IsEncrypted(opts.Path)
	if err != nil {
		return nil, err
	}

	result = &EncryptResult{Path: opts.Path}
	if encrypted {
		deps.Logger.Infof("%s is already encrypted", opts.Path)
		result.AlreadyEncrypted = true
		return result, nil
	}

	deps.Logger.Infof("Encrypting %s", opts.Path)
	if err := deps.Sops.Encrypt(ctx, opts.Path, secrets.FormatOf(opts.Path)); err != nil {
		return nil, fmt.Errorf("failed to encrypt %s: %w", opts.Path, err)
	}

	return result, nil
}
