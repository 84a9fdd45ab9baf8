package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindDecryptedFiles(t *testing.T) {
	tmpDir := t.TempDir()

	for _, f := range []string{
		"secrets.yaml",
		"secrets.yaml.dec",
		"values.yaml.dec",
		"nested/secrets.prod.yaml.dec",
		"nested/deeper/secrets.json.dec",
		"nested/deeper/secrets.dec",
		"nested/secretsfile.txt.dec",
	} {
		writeTestFile(t, filepath.Join(tmpDir, f), "k: v\n")
	}

	files, err := FindDecryptedFiles(tmpDir, ".dec")
	if err != nil {
		t.Fatalf("FindDecryptedFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(tmpDir, "nested/deeper/secrets.json.dec"),
		filepath.Join(tmpDir, "nested/secrets.prod.yaml.dec"),
		filepath.Join(tmpDir, "secrets.yaml.dec"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("FindDecryptedFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestFindDecryptedFiles_CustomSuffix(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "secrets.yaml.dec"), "k: v\n")
	writeTestFile(t, filepath.Join(tmpDir, "secrets.yaml[plain]"), "k: v\n")

	files, err := FindDecryptedFiles(tmpDir, "[plain]")
	if err != nil {
		t.Fatalf("FindDecryptedFiles failed: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(tmpDir, "secrets.yaml[plain]")}, files); diff != "" {
		t.Errorf("FindDecryptedFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestFindDecryptedFiles_SkipsDirectoriesAndSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "secrets.yaml.dec"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	target := filepath.Join(tmpDir, "elsewhere.yaml")
	writeTestFile(t, target, "k: v\n")
	if err := os.Symlink(target, filepath.Join(tmpDir, "secrets.json.dec")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := FindDecryptedFiles(tmpDir, ".dec")
	if err != nil {
		t.Fatalf("FindDecryptedFiles failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected no files, got %v", files)
	}
}

func TestFindDecryptedFiles_EmptySuffix(t *testing.T) {
	if _, err := FindDecryptedFiles(t.TempDir(), ""); err == nil {
		t.Fatal("Expected error for empty suffix")
	}
}
