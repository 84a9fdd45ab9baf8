package cmd

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/workflows"
)

func TestDoctorHealthy(t *testing.T) {
	dir, _ := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(dir, "secrets.yaml"), encryptedYAML)

	stdout, _, err := runCLI(t, "doctor", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Summary: 5 passed") {
		t.Errorf("expected all checks to pass, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Health checks completed") {
		t.Errorf("expected a final message, got:\n%s", stdout)
	}
}

func TestDoctorWarnings(t *testing.T) {
	dir, _ := setupTestEnvironment(t)
	writeTestFile(t, filepath.Join(dir, "secrets.yaml"), "password: pass\n")
	writeTestFile(t, filepath.Join(dir, "env", "secrets.prod.yaml.dec"), "password: pass\n")

	stdout, _, err := runCLI(t, "doctor", dir)
	if err != nil {
		t.Fatalf("warnings must not fail doctor, got %v", err)
	}
	for _, want := range []string{"2 warning(s)", "helm secrets clean", "helm secrets enc"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestDoctorErrorsWhenSopsMissing(t *testing.T) {
	dir, tools := setupTestEnvironment(t)
	tools.sopsErr = errors.New(`exec: "sops": executable file not found in $PATH`)

	stdout, _, err := runCLI(t, "doctor", "--json", dir)
	if !errors.Is(err, kerrors.ErrChecksFailed) {
		t.Fatalf("expected ErrChecksFailed, got %v", err)
	}
	if code := kerrors.ExitCode(err); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}

	var result struct {
		Summary workflows.DoctorSummary `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if result.Summary.Errors != 1 {
		t.Errorf("expected 1 error, got %+v", result.Summary)
	}
}
