package cmd

import (
	"fmt"

	"github.com/PolarWolf314/helm-secrets/internal/ui"
	"github.com/PolarWolf314/helm-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var encCmd = &cobra.Command{
	Use:   "enc <path>",
	Short: "Encrypt a secrets file in place",
	Long: `Encrypts a secrets file in place with sops.

sops runs in the file's directory, so the nearest .sops.yaml creation rules
decide which keys are used. Files that are already encrypted are left alone.`,
	Args: requirePath,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isHelpToken(args[0]) {
			return cmd.Help()
		}
		Logger.Infof("Starting enc command")

		result, err := workflows.Encrypt(cmd.Context(), workflowDeps(), workflows.EncryptOptions{Path: args[0]})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.AlreadyEncrypted {
			fmt.Fprintln(out, ui.Skipped(ui.Path.Sprint(result.Path)+" is already encrypted"))
			return nil
		}
		fmt.Fprintln(out, ui.Done("Encrypted "+ui.Path.Sprint(result.Path)))
		return nil
	},
}
