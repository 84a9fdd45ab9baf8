package cmd

import (
	"github.com/PolarWolf314/helm-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Edit a secrets file in the sops editor",
	Long: `Opens a secrets file in sops' interactive editor ($EDITOR). sops decrypts
the file into a temporary copy and re-encrypts it when the editor exits.`,
	Args: requirePath,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isHelpToken(args[0]) {
			return cmd.Help()
		}
		Logger.Infof("Starting edit command")

		return workflows.Edit(cmd.Context(), workflowDeps(), workflows.EditOptions{Path: args[0]})
	},
}
