package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/ui"
	"github.com/PolarWolf314/helm-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logFailed    bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by user")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logFailed, "failed", false, "show failed runs only")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logFailed = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the activity trail",
	Long: `Displays the activity trail written when HELM_SECRETS_AUDIT_LOG is set.

Examples:
  helm secrets log                        # View full log
  helm secrets log -n 10                  # Last 10 entries
  helm secrets log --reverse              # Most recent first
  helm secrets log --operation enc,dec    # Filter by operation
  helm secrets log --failed               # Runs that did not succeed
  helm secrets log --since 2024-01-01     # Filter by date
  helm secrets log --json                 # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
		TrailPath:  Settings.AuditLogPath,
		Limit:      logLimit,
		Reverse:    logReverse,
		User:       logUser,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
		FailedOnly: logFailed,
	})
	out := cmd.OutOrStdout()
	if errors.Is(err, kerrors.ErrTrailDisabled) {
		fmt.Fprintln(out, ui.Skipped("The activity trail is not enabled"))
		fmt.Fprintln(out, ui.Hint("Set "+ui.Code.Sprint("HELM_SECRETS_AUDIT_LOG")+" to a file path to record runs"))
		return nil
	}
	if err != nil {
		return err
	}

	Logger.Debugf("Parsed %d entries, %d after filtering", result.TotalEntriesBeforeFilter, len(result.Entries))

	if logJSON {
		return outputLogJSON(out, result.Entries)
	}

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Fprintln(out, "No activity recorded yet.")
		} else {
			fmt.Fprintln(out, "No entries found matching the filters.")
		}
		return nil
	}

	for _, e := range result.Entries {
		fmt.Fprintf(out, "%-19s  %-12s  %-12s  %s\n",
			workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
	}
	return nil
}

func outputLogJSON(out io.Writer, entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
