package cmd

import (
	"fmt"

	"github.com/PolarWolf314/helm-secrets/internal/ui"
	"github.com/PolarWolf314/helm-secrets/internal/utils"
	"github.com/PolarWolf314/helm-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var cleanDryRun bool

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "show what would be removed without making changes")
}

func resetCleanCommandState() {
	cleanDryRun = false
}

var cleanCmd = &cobra.Command{
	Use:   "clean <dir>",
	Short: "Remove decrypted secrets files below a directory",
	Long: `Removes every decrypted secrets file (secrets*<suffix>) below a directory,
e.g. the leftovers of 'dec'.

Use --dry-run to preview what would be removed.`,
	Args: requirePath,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isHelpToken(args[0]) {
			return cmd.Help()
		}
		Logger.Infof("Starting clean command")

		out := cmd.OutOrStdout()
		spinner, cleanup := startSpinner(out, "Removing decrypted files...")
		defer cleanup()

		result, err := workflows.Clean(cmd.Context(), workflowDeps(), workflows.CleanOptions{
			Dir:    args[0],
			DryRun: cleanDryRun,
		})
		if err != nil {
			return err
		}

		switch {
		case len(result.Files) == 0:
			spinner.FinalMSG = ui.Done("No decrypted files found. Nothing to clean.")
		case result.DryRun:
			spinner.FinalMSG = fmt.Sprintf("[dry-run] Would remove %d file(s):%s", len(result.Files), utils.FormatPaths(result.Files)) +
				"No changes made."
		default:
			spinner.FinalMSG = ui.Done(fmt.Sprintf("Removed %d file(s):%s", result.RemovedCount, utils.FormatPaths(result.Files)))
		}
		return nil
	},
}
