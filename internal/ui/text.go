package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of text. Without color it falls back to
// the plain decoration around the text.
type Formatter struct {
	color *color.Color
	left  string
	right string
}

func plain(attr color.Attribute) Formatter {
	return Formatter{color: color.New(attr)}
}

func decorated(attr color.Attribute, left, right string) Formatter {
	return Formatter{color: color.New(attr), left: left, right: right}
}

var (
	// Code marks something to run, e.g. `helm secrets clean .`.
	Code = decorated(color.FgYellow, "`", "`")

	// Path marks files and directories.
	Path = plain(color.FgYellow)

	// Muted marks secondary details such as the cache location.
	Muted = decorated(color.FgHiBlack, "(", ")")

	Success = plain(color.FgGreen)
	Error   = plain(color.FgRed)
	Warning = plain(color.FgYellow)
	Info    = plain(color.FgCyan)
)

func (f Formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if colorDisabled() {
		return f.left + text + f.right
	}
	return f.color.Sprint(text)
}

func (f Formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// colorDisabled honors NO_COLOR even when set to an empty string.
func colorDisabled() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set || color.NoColor
}

// Done, Failed, Skipped and Hint prefix a status line with its mark.

func Done(msg string) string    { return mark(Success, "✓", msg) }
func Failed(msg string) string  { return mark(Error, "✗", msg) }
func Skipped(msg string) string { return mark(Warning, "!", msg) }
func Hint(msg string) string    { return mark(Info, "→", msg) }

func mark(f Formatter, symbol, msg string) string {
	return f.Sprint(symbol) + " " + msg
}

// EnsureNewline terminates s with a newline unless it already ends in one.
func EnsureNewline(s string) string {
	if s != "" && s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
