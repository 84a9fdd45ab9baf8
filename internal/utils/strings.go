package utils

import (
	"strings"

	"github.com/PolarWolf314/helm-secrets/internal/ui"

	"github.com/samber/lo"
)

// FormatPaths renders paths as an indented bullet list starting on a new line.
func FormatPaths(paths []string) string {
	items := lo.Map(paths, func(path string, _ int) string {
		return "\n    - " + ui.Path.Sprint(path)
	})
	return strings.Join(items, "") + "\n"
}
