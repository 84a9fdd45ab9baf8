package errors

import (
	"errors"
	"fmt"
)

// User errors indicate an invocation that can never succeed as given.
var (
	// ErrUsage indicates a missing argument or an unknown command.
	ErrUsage = errors.New("invalid usage")

	// ErrFileNotFound indicates a file named on the command line does not exist.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrNotADirectory indicates a path expected to be a directory is not one.
	ErrNotADirectory = errors.New("not a directory")

	// ErrInvalidDateFormat indicates a date filter not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrTrailDisabled indicates the activity trail was read while no trail
	// file is configured.
	ErrTrailDisabled = errors.New("activity trail is not enabled")
)

// ErrParse indicates the arguments do not fit the wrapped command's flag grammar.
var ErrParse = errors.New("failed to parse arguments")

// I/O errors indicate files that exist but could not be processed.
var (
	// ErrReadFile indicates a file could not be read.
	ErrReadFile = errors.New("failed to read file")

	// ErrCacheCorrupt indicates a persisted grammar cache entry could not be decoded.
	ErrCacheCorrupt = errors.New("grammar cache entry is corrupt")
)

// ErrChecksFailed indicates at least one health check reported an error.
var ErrChecksFailed = errors.New("health checks failed")

// ToolError is returned when an external tool exits with a non-zero status.
type ToolError struct {
	Tool string
	Code int
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var toolErr *ToolError
	if errors.As(err, &toolErr) && toolErr.Code != 0 {
		return toolErr.Code
	}

	return 1
}

// IsUserError reports whether err is caused by how the command was invoked.
func IsUserError(err error) bool {
	return errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrNotADirectory) ||
		errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrTrailDisabled) ||
		errors.Is(err, ErrParse)
}
