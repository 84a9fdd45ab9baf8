// Package workflows provides high-level orchestration for helm-secrets
// commands.
//
// Workflows coordinate the secrets, sops and audit packages to implement
// complete user-facing features. Each workflow handles a single command's
// business logic, independent of CLI concerns like flag parsing, spinners,
// and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Validating that the named files exist
//   - Deciding whether sops needs to run at all
//   - Performing the core operation
//   - Recording activity trail entries
//
// # Available Workflows
//
//   - Encrypt: encrypts a secrets file in place
//   - Decrypt: writes the decrypted sibling of a secrets file
//   - View: prints the decrypted content without touching disk
//   - Edit: opens a secrets file in the sops editor
//   - Clean: removes decrypted siblings below a directory
//   - Log: reads the activity trail
//   - Doctor: checks that helm, sops and the grammar cache are usable
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Decrypt(ctx, deps, opts)
//	if errors.Is(err, kerrors.ErrFileNotFound) {
//	    // Show usage
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It is handed to every sops invocation.
package workflows
