package secrets

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Format is the document type passed to sops as --input-type/--output-type.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// secretsFilePattern matches secrets.yaml, secrets.prod.yaml, secrets.a.b.json, ...
var secretsFilePattern = regexp.MustCompile(`^secrets(\..+)?\.(yaml|json)$`)

// IsSecretsFile reports whether the base name of path marks it as a secrets
// file eligible for transparent decryption.
func IsSecretsFile(path string) bool {
	return secretsFilePattern.MatchString(filepath.Base(path))
}

// DecryptedPath returns the path of the decrypted sibling of path: the final
// extension is kept and suffix appended to it.
func DecryptedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ext + suffix
}

// FormatOf returns the document format of path, judged by its extension.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
