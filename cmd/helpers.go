package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/sops"
	"github.com/PolarWolf314/helm-secrets/internal/ui"
	"github.com/PolarWolf314/helm-secrets/internal/utils"
	"github.com/PolarWolf314/helm-secrets/internal/workflows"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var helpTokens = []string{"-h", "--help", "help"}

func isHelpToken(arg string) bool {
	return slices.Contains(helpTokens, arg)
}

func usageError(msg string) error {
	return fmt.Errorf("%w: %s", kerrors.ErrUsage, msg)
}

// requirePath accepts exactly one path argument. A missing path prints
// usage and fails; "help" in its place is let through for RunE to handle.
func requirePath(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return nil
	case 0:
		_ = cmd.Usage()
		return usageError("missing path")
	default:
		_ = cmd.Usage()
		return usageError(fmt.Sprintf("expected one path, got %d", len(args)))
	}
}

// sopsClient returns a sops client built from Settings.
func sopsClient() *sops.Client {
	return sops.New(Settings.SopsCommand, Runner)
}

func trail() *audit.Trail {
	return audit.New(Settings.AuditLogPath, Logger)
}

func workflowDeps() *workflows.Deps {
	return &workflows.Deps{
		Sops:   sopsClient(),
		Suffix: Settings.DecryptedSuffix,
		Logger: Logger,
		Trail:  trail(),
	}
}

// startSpinner creates and starts a spinner on stderr with the given message
// when stderr is a terminal and not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up;
// the cleanup prints the spinner's FinalMSG to out.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(out io.Writer, message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	active := !Logger.Verbose && !Logger.Debug && utils.IsTerminal(os.Stderr)
	if active {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if active {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}
