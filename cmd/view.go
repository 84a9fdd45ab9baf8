package cmd

import (
	"github.com/PolarWolf314/helm-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <path>",
	Short: "Print the decrypted content of a secrets file",
	Long: `Prints the decrypted content of a secrets file as YAML on stdout.
Nothing is written to disk.`,
	Args: requirePath,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isHelpToken(args[0]) {
			return cmd.Help()
		}
		Logger.Infof("Starting view command")

		return workflows.View(cmd.Context(), workflowDeps(), workflows.ViewOptions{
			Path: args[0],
			Out:  cmd.OutOrStdout(),
		})
	},
}
