// Package logger provides levelled logging for helm-secrets commands.
//
// All log output goes to stderr: stdout belongs to the wrapped tools and to
// the view command, whose output is often piped.
//
// # Verbosity Levels
//
//   - --verbose (or HELM_SECRETS_VERBOSE): info messages
//   - --debug (or HELM_SECRETS_DEBUG / HELM_DEBUG): info and debug messages
//
// Warnings and errors are always shown.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Decrypting %s", path)
//	return log.ErrorfAndReturn("failed to load grammar: %v", err)
package logger
