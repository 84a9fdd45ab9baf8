package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/ui"
	"github.com/PolarWolf314/helm-secrets/internal/workflows"

	"github.com/spf13/cobra"
)

var doctorJSONOutput bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Run health checks on the helm-secrets setup",
	Long: `Runs a series of health checks and reports issues.

The doctor command checks:
  - helm and sops can be run
  - The grammar cache directory is writable
  - No decrypted secrets files are left below dir (default: current directory)
  - Every secrets file below dir is encrypted

Exits 1 when a check reports an error. Warnings do not change the exit code.

Use --json for machine-readable output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	out := cmd.OutOrStdout()
	spinner, cleanup := startSpinner(out, "Running health checks...")
	defer cleanup()

	result, err := workflows.Doctor(cmd.Context(), workflows.DoctorOptions{
		Helm:     Settings.HelmCommand,
		Sops:     Settings.SopsCommand,
		CacheDir: Settings.CacheDir,
		Dir:      dir,
		Suffix:   Settings.DecryptedSuffix,
		Runner:   Runner,
	})
	if err != nil {
		spinner.FinalMSG = ui.Failed("Failed to run health checks: " + err.Error())
		return err
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status.String(), check.Message)
	}

	if doctorJSONOutput {
		if err := outputDoctorJSON(out, result); err != nil {
			return err
		}
	} else {
		printDoctorResults(out, result)
		switch {
		case result.Summary.Errors > 0:
			spinner.FinalMSG = ui.Failed("Health checks completed with errors")
		case result.Summary.Warnings > 0:
			spinner.FinalMSG = ui.Skipped("Health checks completed with warnings")
		default:
			spinner.FinalMSG = ui.Done("Health checks completed")
		}
	}

	if result.Summary.Errors > 0 {
		return kerrors.ErrChecksFailed
	}
	return nil
}

func outputDoctorJSON(out io.Writer, result *workflows.DoctorResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// printDoctorResults prints the doctor results in a human-readable format.
func printDoctorResults(out io.Writer, result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		var line string
		switch check.Status {
		case workflows.CheckPass:
			line = ui.Done(check.Name + ": " + check.Message)
		case workflows.CheckWarning:
			line = ui.Skipped(check.Name + ": " + check.Message)
		case workflows.CheckError:
			line = ui.Failed(check.Name + ": " + check.Message)
		}
		fmt.Fprintln(out, strings.TrimRight(line, "\n"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Fprintf(out, ", %s", ui.Warning.Sprintf("%d warning(s)", result.Summary.Warnings))
	}
	if result.Summary.Errors > 0 {
		fmt.Fprintf(out, ", %s", ui.Error.Sprintf("%d error(s)", result.Summary.Errors))
	}
	fmt.Fprintln(out)

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Suggestions:")
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(out, "  %s\n", ui.Hint(suggestion))
		}
	}
}
