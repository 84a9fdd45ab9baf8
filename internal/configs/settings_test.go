package configs

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadFromDefaults(t *testing.T) {
	settings, err := LoadFrom(lookupFrom(map[string]string{
		EnvCacheDir: "/tmp/grammar",
	}))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if settings.DecryptedSuffix != ".dec" {
		t.Errorf("Expected default suffix .dec, got %q", settings.DecryptedSuffix)
	}
	if diff := cmp.Diff([]string{"helm"}, settings.HelmCommand); diff != "" {
		t.Errorf("HelmCommand mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sops"}, settings.SopsCommand); diff != "" {
		t.Errorf("SopsCommand mismatch (-want +got):\n%s", diff)
	}
	if settings.TillerHost != "" || settings.AuditLogPath != "" {
		t.Errorf("Expected optional settings to be empty, got %+v", settings)
	}
	if settings.Verbose || settings.Debug {
		t.Errorf("Expected quiet logging by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	settings, err := LoadFrom(lookupFrom(map[string]string{
		EnvDecryptedSuffix: ".plain",
		EnvHelmBin:         `/opt/helm/bin/helm --kube-context "staging east"`,
		EnvSopsBin:         "sops --verbose",
		EnvTillerHost:      "tiller.example:44134",
		EnvPluginDir:       "/plugins/helm-secrets",
		EnvAuditLog:        "/var/log/helm-secrets.jsonl",
		EnvHelmDebug:       "true",
	}))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if settings.DecryptedSuffix != ".plain" {
		t.Errorf("Expected suffix .plain, got %q", settings.DecryptedSuffix)
	}
	if diff := cmp.Diff([]string{"/opt/helm/bin/helm", "--kube-context", "staging east"}, settings.HelmCommand); diff != "" {
		t.Errorf("HelmCommand mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sops", "--verbose"}, settings.SopsCommand); diff != "" {
		t.Errorf("SopsCommand mismatch (-want +got):\n%s", diff)
	}
	if settings.TillerHost != "tiller.example:44134" {
		t.Errorf("Unexpected TillerHost %q", settings.TillerHost)
	}
	if want := filepath.Join("/plugins/helm-secrets", ".cache", "grammar"); settings.CacheDir != want {
		t.Errorf("Expected cache dir %q, got %q", want, settings.CacheDir)
	}
	if !settings.Debug {
		t.Errorf("Expected HELM_DEBUG to enable debug logging")
	}
}

func TestLoadFromExplicitCacheDirWins(t *testing.T) {
	settings, err := LoadFrom(lookupFrom(map[string]string{
		EnvCacheDir:  "/explicit",
		EnvPluginDir: "/plugins/helm-secrets",
	}))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if settings.CacheDir != "/explicit" {
		t.Errorf("Expected explicit cache dir, got %q", settings.CacheDir)
	}
}

func TestLoadFromRejectsUnbalancedQuotes(t *testing.T) {
	_, err := LoadFrom(lookupFrom(map[string]string{
		EnvCacheDir: "/tmp/grammar",
		EnvHelmBin:  `helm --kube-context "unterminated`,
	}))
	if err == nil {
		t.Fatal("Expected error for unbalanced quotes in HELM_BIN")
	}
}
