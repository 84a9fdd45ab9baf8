// Package utils provides small filesystem, terminal and formatting helpers
// shared by the workflows, the helm wrapper and the commands.
//
// # Filesystem Utilities
//
//   - FileExists / DirExists: existence checks that treat stat errors other
//     than "not found" as errors
//   - IsNewer: compares modification times, used to reuse a decrypted sibling
//
// # Terminal Utilities
//
//   - IsTerminal: reports whether a file is attached to a terminal
//
// # String Utilities
//
//   - FormatPaths: renders a list of paths for human-readable output
package utils
