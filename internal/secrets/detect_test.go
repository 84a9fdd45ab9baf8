package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
)

const encryptedYAML = `secret_key: ENC[AES256_GCM,data:bW9vbg==,iv:aXY=,tag:dGFn,type:str]
sops:
    kms: []
    gcp_kms: []
    azure_kv: []
    hc_vault: []
    age: []
    lastmodified: "2024-03-01T10:00:00Z"
    mac: ENC[AES256_GCM,data:bWFj,iv:aXY=,tag:dGFn,type:str]
    pgp:
        - created_at: "2024-03-01T10:00:00Z"
          enc: |
            -----BEGIN PGP MESSAGE-----
            wcBMA
            -----END PGP MESSAGE-----
          fp: 1234567890ABCDEF
    unencrypted_suffix: _unencrypted
    version: 3.8.1
`

const encryptedJSON = `{
	"secret_key": "ENC[AES256_GCM,data:bW9vbg==,iv:aXY=,tag:dGFn,type:str]",
	"sops": {
		"kms": null,
		"lastmodified": "2024-03-01T10:00:00Z",
		"mac": "ENC[AES256_GCM,data:bWFj,iv:aXY=,tag:dGFn,type:str]",
		"version": "3.8.1"
	}
}`

// writeTestFile is a helper to write test files with 0644 permissions.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create test dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestIsEncrypted(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"encrypted yaml", "secrets.yaml", encryptedYAML, true},
		{"encrypted json", "secrets.json", encryptedJSON, true},
		{"plain yaml", "secrets.yaml", "secret_key: moon\n", false},
		{"plain json", "secrets.json", `{"secret_key": "moon"}`, false},
		{"empty", "secrets.yaml", "", false},
		{"sops key without version", "secrets.yaml", "sops:\n    mac: abc\n", false},
		{"nested sops key", "secrets.yaml", "app:\n    sops:\n        version: 3.8.1\n", false},
		{"sops as a value", "secrets.yaml", "tool: sops\nversion: 1\n", false},
		{
			"malformed yaml falls back to scanning",
			"secrets.yaml",
			"password: [unclosed\nsops:\n    mac: abc\n    version: 3.8.1\n",
			true,
		},
		{
			"malformed yaml without marker",
			"secrets.yaml",
			"password: [unclosed\n",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeTestFile(t, path, tt.content)

			got, err := IsEncrypted(path)
			if err != nil {
				t.Fatalf("IsEncrypted failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsEncrypted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsEncrypted_UnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	path := filepath.Join(t.TempDir(), "secrets.yaml")
	writeTestFile(t, path, encryptedYAML)
	if err := os.Chmod(path, 0000); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}

	_, err := IsEncrypted(path)
	if !errors.Is(err, kerrors.ErrReadFile) {
		t.Errorf("Expected ErrReadFile, got %v", err)
	}
}

func TestScanSopsMarker_LookaheadIsBounded(t *testing.T) {
	var b strings.Builder
	b.WriteString("sops:\n")
	for i := 0; i < markerLookahead+10; i++ {
		b.WriteString("    filler: x\n")
	}
	b.WriteString("    version: 3.8.1\n")

	if scanSopsMarker([]byte(b.String())) {
		t.Errorf("Expected version beyond the lookahead window not to count")
	}
	if !scanSopsMarker([]byte("sops:\n    mac: x\n    version: 3.8.1\n")) {
		t.Errorf("Expected version within the window to count")
	}
}
