package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PolarWolf314/helm-secrets/internal/runner"
	"github.com/PolarWolf314/helm-secrets/internal/secrets"
	"github.com/PolarWolf314/helm-secrets/internal/utils"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	Helm []string
	Sops []string

	// CacheDir is the grammar cache directory.
	CacheDir string

	// Dir is scanned for decrypted siblings and unencrypted secrets files.
	Dir string

	// Suffix names decrypted siblings.
	Suffix string

	Runner runner.Runner
}

// Doctor runs health checks on the helm-secrets setup.
//
// The doctor workflow checks:
//   - helm and sops can be run
//   - The grammar cache directory is writable
//   - No decrypted siblings are left lying around
//   - Every secrets file is encrypted
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	checks := []func() CheckResult{
		func() CheckResult { return checkTool(ctx, opts.Runner, "helm", opts.Helm, "version", "--short") },
		func() CheckResult { return checkTool(ctx, opts.Runner, "sops", opts.Sops, "--version") },
		func() CheckResult { return checkCacheDir(opts.CacheDir) },
		func() CheckResult { return checkDecryptedFiles(opts.Dir, opts.Suffix) },
		func() CheckResult { return checkUnencryptedFiles(opts.Dir) },
	}

	var results []CheckResult
	for _, check := range checks {
		results = append(results, check())
	}

	// Collect suggestions (deduplicated).
	var suggestions []string
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !slices.Contains(suggestions, result.Suggestion) {
			suggestions = append(suggestions, result.Suggestion)
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

// checkTool checks that command runs and reports its version.
func checkTool(ctx context.Context, r runner.Runner, name string, command []string, args ...string) CheckResult {
	result := CheckResult{Name: name + " available"}

	out, err := runner.Output(ctx, r, runner.Invocation{
		Command: append(slices.Clone(command), args...),
		Stderr:  &strings.Builder{},
	})
	if err != nil {
		result.Status = CheckError
		result.Message = fmt.Sprintf("cannot run %s: %v", strings.Join(command, " "), err)
		result.Suggestion = fmt.Sprintf("Install %s or point the environment at it", name)
		return result
	}

	result.Status = CheckPass
	result.Message = firstLine(string(out))
	return result
}

// checkCacheDir checks that the grammar cache directory can be written.
func checkCacheDir(dir string) CheckResult {
	result := CheckResult{Name: "Grammar cache"}

	if err := os.MkdirAll(dir, 0700); err != nil {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("cannot create %s: %v", dir, err)
		result.Suggestion = "Set HELM_SECRETS_CACHE_DIR to a writable directory"
		return result
	}

	probe := filepath.Join(dir, ".probe-"+uuid.NewString())
	if err := os.WriteFile(probe, nil, 0600); err != nil {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("%s is not writable; flags will be discovered on every run", dir)
		result.Suggestion = "Set HELM_SECRETS_CACHE_DIR to a writable directory"
		return result
	}
	_ = os.Remove(probe)

	result.Status = CheckPass
	result.Message = dir
	return result
}

// checkDecryptedFiles looks for decrypted siblings below dir.
func checkDecryptedFiles(dir, suffix string) CheckResult {
	result := CheckResult{Name: "Decrypted files"}

	files, err := secrets.FindDecryptedFiles(dir, suffix)
	if err != nil {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("cannot scan %s: %v", dir, err)
		return result
	}

	if len(files) > 0 {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("%d decrypted file(s) found:%s", len(files), utils.FormatPaths(files))
		result.Suggestion = "Run 'helm secrets clean " + dir + "' to remove them"
		return result
	}

	result.Status = CheckPass
	result.Message = "No decrypted files found"
	return result
}

// checkUnencryptedFiles looks for secrets files without sops metadata.
func checkUnencryptedFiles(dir string) CheckResult {
	result := CheckResult{Name: "Unencrypted secrets files"}

	matches, err := doublestar.Glob(os.DirFS(dir), "**/secrets*.{yaml,json}")
	if err != nil {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("cannot scan %s: %v", dir, err)
		return result
	}

	var plain []string
	for _, m := range matches {
		path := filepath.Join(dir, filepath.FromSlash(m))
		if !secrets.IsSecretsFile(path) {
			continue
		}
		encrypted, err := secrets.IsEncrypted(path)
		if err == nil && !encrypted {
			plain = append(plain, path)
		}
	}

	if len(plain) > 0 {
		result.Status = CheckWarning
		result.Message = fmt.Sprintf("%d secrets file(s) are not encrypted:%s", len(plain), utils.FormatPaths(plain))
		result.Suggestion = "Run 'helm secrets enc <file>' on each of them"
		return result
	}

	result.Status = CheckPass
	result.Message = "All secrets files are encrypted"
	return result
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// calculateDoctorSummary calculates the counts of checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
