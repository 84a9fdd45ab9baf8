// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or colors are unavailable, text decorations are used instead
// (backticks for commands, parentheses for muted text).
//
//	ui.Code.Sprint("helm secrets enc secrets.yaml")
//	ui.Path.Sprint("values/secrets.yaml.dec")
//
// Status lines pair a symbol with a message:
//
//	fmt.Println(ui.Done("Encrypted " + ui.Path.Sprint(path)))
//	fmt.Println(ui.Failed("File does not exist"))
//	fmt.Println(ui.Hint("Run " + ui.Code.Sprint("helm secrets dec") + " first"))
package ui
