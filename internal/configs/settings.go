package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-shellwords"
)

// Environment variables read by Load.
const (
	EnvDecryptedSuffix = "HELM_SECRETS_DEC_SUFFIX"
	EnvHelmBin         = "HELM_BIN"
	EnvSopsBin         = "HELM_SECRETS_SOPS_BIN"
	EnvTillerHost      = "TILLER_HOST"
	EnvPluginDir       = "HELM_PLUGIN_DIR"
	EnvCacheDir        = "HELM_SECRETS_CACHE_DIR"
	EnvAuditLog        = "HELM_SECRETS_AUDIT_LOG"
	EnvVerbose         = "HELM_SECRETS_VERBOSE"
	EnvDebug           = "HELM_SECRETS_DEBUG"
	EnvHelmDebug       = "HELM_DEBUG"
)

const (
	DefaultDecryptedSuffix = ".dec"
	DefaultHelmBin         = "helm"
	DefaultSopsBin         = "sops"
)

// Settings is the runtime configuration of helm-secrets, resolved once per
// process from the environment.
type Settings struct {
	// DecryptedSuffix is appended to a secrets file path to name its decrypted sibling.
	DecryptedSuffix string

	// HelmCommand is the wrapped tool's executable followed by any fixed arguments.
	HelmCommand []string

	// SopsCommand is the encryption tool's executable followed by any fixed arguments.
	SopsCommand []string

	// TillerHost, when set, is forwarded to helm as --host.
	TillerHost string

	// CacheDir holds one grammar cache entry per wrapped command.
	CacheDir string

	// AuditLogPath enables the activity trail when non-empty.
	AuditLogPath string

	Verbose bool
	Debug   bool
}

// Load resolves Settings from the process environment.
func Load() (*Settings, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom resolves Settings using lookup in place of os.LookupEnv.
func LoadFrom(lookup func(string) (string, bool)) (*Settings, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	helmCommand, err := splitCommand(get(EnvHelmBin, DefaultHelmBin))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", EnvHelmBin, err)
	}

	sopsCommand, err := splitCommand(get(EnvSopsBin, DefaultSopsBin))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", EnvSopsBin, err)
	}

	cacheDir, err := resolveCacheDir(get(EnvCacheDir, ""), get(EnvPluginDir, ""))
	if err != nil {
		return nil, err
	}

	return &Settings{
		DecryptedSuffix: get(EnvDecryptedSuffix, DefaultDecryptedSuffix),
		HelmCommand:     helmCommand,
		SopsCommand:     sopsCommand,
		TillerHost:      get(EnvTillerHost, ""),
		CacheDir:        cacheDir,
		AuditLogPath:    get(EnvAuditLog, ""),
		Verbose:         parseBool(get(EnvVerbose, "")),
		Debug:           parseBool(get(EnvDebug, "")) || parseBool(get(EnvHelmDebug, "")),
	}, nil
}

// splitCommand splits a command line the way a POSIX shell would, so
// HELM_BIN="helm --kube-context staging" works.
func splitCommand(line string) ([]string, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty command %q", line)
	}
	return words, nil
}

func resolveCacheDir(explicit, pluginDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if pluginDir != "" {
		return filepath.Join(pluginDir, ".cache", "grammar"), nil
	}

	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("error getting cache directory: %w", err)
	}
	return filepath.Join(userCacheDir, "helm-secrets", "grammar"), nil
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
