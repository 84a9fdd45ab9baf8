package cmd

import (
	"fmt"

	"github.com/PolarWolf314/helm-secrets/internal/ui"
	"github.com/PolarWolf314/helm-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var decCmd = &cobra.Command{
	Use:   "dec <path>",
	Short: "Decrypt a secrets file into its decrypted sibling",
	Long: `Decrypts a secrets file into <path><suffix>, e.g. secrets.yaml.dec.

The decrypted file keeps the format of the secrets file. An existing
decrypted file is overwritten. Remove decrypted files with 'clean'.`,
	Args: requirePath,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isHelpToken(args[0]) {
			return cmd.Help()
		}
		Logger.Infof("Starting dec command")

		result, err := workflows.Decrypt(cmd.Context(), workflowDeps(), workflows.DecryptOptions{Path: args[0]})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.NotEncrypted {
			fmt.Fprintln(out, ui.Skipped(ui.Path.Sprint(result.Path)+" is not encrypted"))
			return nil
		}
		fmt.Fprintln(out, ui.Done("Decrypted "+ui.Path.Sprint(result.Path)+" into "+ui.Path.Sprint(result.DecryptedPath)))
		fmt.Fprintln(out, ui.Hint("Run "+ui.Code.Sprint("helm secrets clean <dir>")+" when you are done with it"))
		return nil
	},
}
