// Package errors provides typed error values for helm-secrets.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Failures of
// external tools (sops, helm) are reported as *ToolError so their exit code
// can be propagated unchanged.
//
// # Error Categories
//
//   - User errors: bad invocation or missing files (ErrUsage, ErrFileNotFound)
//   - Parse errors: arguments rejected by the discovered grammar (ErrParse)
//   - Tool errors: sops or helm exited non-zero (*ToolError)
//   - I/O errors: files that exist but cannot be read or written (ErrReadFile)
//
// # Exit Codes
//
// ExitCode maps any error to the process exit status:
//
//	if err := cmd.Execute(); err != nil {
//	    os.Exit(errors.ExitCode(err))
//	}
//
// A *ToolError keeps the tool's own code, everything else exits 1.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("decrypting %s: %w", path, err)
package errors
