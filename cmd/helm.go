package cmd

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/grammar"
	"github.com/PolarWolf314/helm-secrets/internal/wrapper"

	"github.com/spf13/cobra"
)

var helmCmds = []*cobra.Command{
	newHelmCommand("install", "", "Run helm install with secrets values files decrypted"),
	newHelmCommand("upgrade", "", "Run helm upgrade with secrets values files decrypted"),
	newHelmCommand("lint", "", "Run helm lint with secrets values files decrypted"),
	newHelmCommand("diff", "<subcommand> ", "Run a helm diff (plugin) subcommand with secrets values files decrypted"),
}

// newHelmCommand returns a command passing its arguments through to
// `helm <name>`. A non-empty subcommand usage makes the first argument a
// subcommand, as for the helm-diff plugin.
func newHelmCommand(name, subcommandUsage, short string) *cobra.Command {
	hasSubcommand := subcommandUsage != ""

	return &cobra.Command{
		Use:   name + " " + subcommandUsage + "[helm " + name + " arguments...]",
		Short: short,
		Long: short + `.

Every argument is passed to helm, reordered as
  helm [--host $TILLER_HOST] ` + name + ` ` + subcommandUsage + `<positionals...> <options...>

Each -f/--values file named secrets*.yaml or secrets*.json is decrypted into
its decrypted sibling first and removed once helm exits, whatever its exit
status. Helm's exit status is returned.

The flags helm accepts are read from 'helm ` + name + ` --help' and cached per
helm version. Set HELM_SECRETS_VERBOSE or HELM_SECRETS_DEBUG for logging:
all flags on this command belong to helm.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || isHelpToken(args[0]) {
				return cmd.Help()
			}

			subcommand := ""
			if hasSubcommand {
				subcommand, args = args[0], args[1:]
			}
			Logger.Infof("Starting %s", strings.TrimSpace("helm "+name+" "+subcommand))

			code, err := newWrapper(cmd).Run(cmd.Context(), name, subcommand, args)
			if err != nil {
				return err
			}
			if code != 0 {
				return &kerrors.ToolError{Tool: "helm", Code: code}
			}
			return nil
		},
	}
}

func newWrapper(cmd *cobra.Command) *wrapper.Wrapper {
	cache := &grammar.Cache{
		Dir:    Settings.CacheDir,
		Source: &grammar.HelpSource{Helm: Settings.HelmCommand, Runner: Runner},
		Logger: Logger,
	}

	return &wrapper.Wrapper{
		Helm:       Settings.HelmCommand,
		TillerHost: Settings.TillerHost,
		Suffix:     Settings.DecryptedSuffix,
		Grammars:   &discoveringGrammars{cache: cache, cmd: cmd},
		Sops:       sopsClient(),
		Runner:     Runner,
		Logger:     Logger,
		Trail:      trail(),
	}
}

// discoveringGrammars shows a spinner while a grammar is being discovered.
type discoveringGrammars struct {
	cache *grammar.Cache
	cmd   *cobra.Command
}

func (d *discoveringGrammars) Get(ctx context.Context, command, subcommand string) (*grammar.Grammar, error) {
	var stop func()
	d.cache.OnDiscover = func(command, subcommand string) {
		_, stop = startSpinner(d.cmd.ErrOrStderr(), fmt.Sprintf("Discovering flags of %s...",
			strings.TrimSpace("helm "+command+" "+subcommand)))
	}

	g, err := d.cache.Get(ctx, command, subcommand)
	if stop != nil {
		stop()
	}
	return g, err
}
