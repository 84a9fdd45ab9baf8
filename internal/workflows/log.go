package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"

	"github.com/samber/lo"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// TrailPath is the activity trail to read. Empty means the trail is
	// disabled.
	TrailPath string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// User filters entries by user name.
	User string

	// Operations filters entries by operation (comma-separated), e.g. "enc,upgrade".
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string

	// FailedOnly keeps entries with a non-zero exit code or an error.
	FailedOnly bool
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered trail entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the activity trail.
//
// Returns ErrTrailDisabled if no trail is configured.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if opts.TrailPath == "" {
		return nil, kerrors.ErrTrailDisabled
	}

	entries, err := audit.ReadEntries(opts.TrailPath)
	if err != nil {
		return nil, fmt.Errorf("reading activity trail: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}
	filtered := entries

	if opts.User != "" {
		filtered = lo.Filter(filtered, func(e audit.Entry, _ int) bool {
			return strings.EqualFold(e.User, opts.User)
		})
	}

	if opts.Operations != "" {
		ops := lo.Map(strings.Split(opts.Operations, ","), func(op string, _ int) string {
			return strings.ToLower(strings.TrimSpace(op))
		})
		filtered = lo.Filter(filtered, func(e audit.Entry, _ int) bool {
			return lo.Contains(ops, strings.ToLower(e.Operation))
		})
	}

	if opts.FailedOnly {
		filtered = lo.Filter(filtered, func(e audit.Entry, _ int) bool {
			return e.ExitCode != 0 || e.Error != ""
		})
	}

	if opts.Since != "" {
		since, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filtered = lo.Filter(filtered, func(e audit.Entry, _ int) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.Before(since)
		})
	}

	if opts.Until != "" {
		until, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filtered = lo.Filter(filtered, func(e audit.Entry, _ int) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.After(until)
		})
	}

	if opts.Reverse {
		filtered = slices.Clone(filtered)
		slices.Reverse(filtered)
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes what an entry touched.
func FormatDetails(e audit.Entry) string {
	var details string
	switch {
	case e.Operation == "clean" && e.DryRun:
		details = fmt.Sprintf("would remove %d files", len(e.Files))
	case e.Operation == "clean":
		details = fmt.Sprintf("removed %d files", e.RemovedCount)
	case len(e.Files) > 3:
		details = fmt.Sprintf("%d files", len(e.Files))
	default:
		details = strings.Join(e.Files, ", ")
	}

	switch {
	case e.Error != "":
		details = strings.TrimSpace(details + " (" + e.Error + ")")
	case e.ExitCode != 0:
		details = strings.TrimSpace(fmt.Sprintf("%s (exit %d)", details, e.ExitCode))
	}
	return details
}
