package cmd

import (
	"fmt"

	"github.com/PolarWolf314/helm-secrets/internal/configs"
	logger "github.com/PolarWolf314/helm-secrets/internal/logging"
	"github.com/PolarWolf314/helm-secrets/internal/runner"

	"github.com/spf13/cobra"
)

var (
	verbose  bool
	debug    bool
	Logger   logger.Logger
	Settings *configs.Settings

	// Runner executes helm and sops.
	Runner runner.Runner = runner.Exec{}

	RootCmd = &cobra.Command{
		Use:   "helm-secrets",
		Short: "Manage sops-encrypted secrets files for Helm charts",
		Long: `helm-secrets encrypts, decrypts, views and edits secrets files with sops,
and wraps helm so that secrets values files are decrypted on the fly.

A secrets file is named secrets.yaml, secrets.json or secrets.<anything>.yaml|json.
Decrypted copies are written next to it with the suffix from
HELM_SECRETS_DEC_SUFFIX (default .dec).

Wrapped helm commands (install, upgrade, lint, diff) accept every flag helm
accepts; any -f/--values secrets file is decrypted for the duration of the
run and removed afterwards.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return usageError("no command given")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	RootCmd.AddCommand(encCmd)
	RootCmd.AddCommand(decCmd)
	RootCmd.AddCommand(viewCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(cleanCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(doctorCmd)
	for _, c := range helmCmds {
		RootCmd.AddCommand(c)
	}
}

// initialize resolves Settings and the Logger before any command runs.
func initialize(cmd *cobra.Command, args []string) error {
	settings, err := configs.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	Settings = settings

	Logger = logger.Logger{
		Verbose: verbose || settings.Verbose,
		Debug:   debug || settings.Debug,
		Writer:  cmd.ErrOrStderr(),
	}
	Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), Logger.Verbose, Logger.Debug)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Settings = nil
	Runner = runner.Exec{}
	resetCleanCommandState()
	resetLogCommandState()
	resetDoctorCommandState()
}

// SetRunner replaces the runner used for helm and sops.
func SetRunner(r runner.Runner) {
	Runner = r
}
