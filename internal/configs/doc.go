// Package configs resolves the runtime settings of helm-secrets and reads
// and writes the TOML files it keeps on disk.
//
// # Settings
//
// Settings are read once per process from the environment. Empty variables
// count as unset.
//
//   - HELM_SECRETS_DEC_SUFFIX: suffix of decrypted siblings (default .dec)
//   - HELM_BIN: helm executable, split like a shell command line (default helm)
//   - HELM_SECRETS_SOPS_BIN: sops executable, split the same way (default sops)
//   - TILLER_HOST: forwarded to helm as --host when set
//   - HELM_SECRETS_CACHE_DIR: grammar cache directory
//   - HELM_PLUGIN_DIR: plugin directory; the cache defaults to <dir>/.cache/grammar
//   - HELM_SECRETS_AUDIT_LOG: enables the activity trail at this path
//   - HELM_SECRETS_VERBOSE, HELM_SECRETS_DEBUG, HELM_DEBUG: log levels
//
// Without HELM_SECRETS_CACHE_DIR or HELM_PLUGIN_DIR the grammar cache lives
// in the user cache directory (os.UserCacheDir()/helm-secrets/grammar).
//
// # TOML Files
//
// SaveTOML writes through a temporary file in the target directory and
// renames it into place, so readers never observe a partial file.
// LoadTOML decodes a file into any value.
package configs
