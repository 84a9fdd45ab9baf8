// Package grammar discovers and caches the command-line flags accepted by
// the wrapped helm commands, and parses user arguments against them.
//
// # Discovery
//
// A Source reports a version fingerprint and the flag set of a command. The
// HelpSource implementation scrapes the "Flags:" section of
// `helm <command> [<subcommand>] --help`. The scrape is best effort: lines it
// does not understand are skipped, and the flags they describe are then not
// recognised by Parse.
//
// # Caching
//
// Cache keeps one TOML file per (command, subcommand) pair:
//
//	fingerprint = "v3.14.0+g3fc9f4b"
//	short_options = "f:hn:"
//	long_options = "values:,help,namespace:,dry-run::"
//
//	[[flags]]
//	short = "f"
//	long = "values"
//	takes_value = true
//
// An entry is reused only while the fingerprint matches exactly; otherwise it
// is regenerated and replaced atomically.
//
// # Parsing
//
// Parse applies GNU rules: options and positionals may be interleaved, "--"
// ends option parsing, unknown options are an error. Options come back in the
// order they were given.
package grammar
