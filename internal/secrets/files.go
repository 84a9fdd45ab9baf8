package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

// FindDecryptedFiles returns every regular file below dir that is the
// decrypted sibling of a secrets file, i.e. named secrets*.<yaml|json><suffix>.
func FindDecryptedFiles(dir, suffix string) ([]string, error) {
	if suffix == "" {
		return nil, fmt.Errorf("decrypted file suffix must not be empty")
	}

	pattern := filepath.Join(globEscaper.Replace(dir), "**", "secrets*"+globEscaper.Replace(suffix))
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !IsSecretsFile(strings.TrimSuffix(m, suffix)) {
			continue
		}
		files = append(files, m)
	}

	sort.Strings(files)
	return files, nil
}
