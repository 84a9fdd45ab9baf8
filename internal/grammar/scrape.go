package grammar

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/PolarWolf314/helm-secrets/internal/runner"
)

// Source discovers the grammar of wrapped commands.
type Source interface {
	// Fingerprint identifies the version of the tool (and of the subcommand,
	// when given) that Flags would describe.
	Fingerprint(ctx context.Context, command, subcommand string) (string, error)

	// Flags returns the flags accepted by the command.
	Flags(ctx context.Context, command, subcommand string) ([]FlagSpec, error)
}

// flagLinePattern matches pflag-style usage lines:
//
//	-f, --values strings        specify values in a YAML file
//	    --atomic                if set, ...
//	    --dry-run string[="none"]  simulate an install
var flagLinePattern = regexp.MustCompile(
	`^\s*(?:-([A-Za-z0-9]), )?--([A-Za-z0-9][A-Za-z0-9-]*)(?: ([A-Za-z][A-Za-z0-9]*)(\[=[^\]]*\])?)?(?:\s|$)`,
)

const (
	flagsHeader       = "Flags:"
	globalFlagsHeader = "Global Flags:"
)

// ParseHelp extracts the flags listed between the "Flags:" header and the
// next "Global Flags:" header (or the end) of a help text.
func ParseHelp(help string) []FlagSpec {
	var flags []FlagSpec
	inFlags := false

	scanner := bufio.NewScanner(strings.NewReader(help))
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, flagsHeader):
			inFlags = true
			continue
		case strings.HasPrefix(line, globalFlagsHeader):
			if inFlags {
				return flags
			}
			continue
		case !inFlags:
			continue
		}

		m := flagLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		flags = append(flags, FlagSpec{
			Short:         m[1],
			Long:          m[2],
			TakesValue:    m[3] != "",
			OptionalValue: m[4] != "",
		})
	}

	return flags
}

// HelpSource asks helm itself: `helm version --short` for the fingerprint
// and `helm <command> --help` for the flags.
type HelpSource struct {
	// Helm is the helm executable followed by any fixed arguments.
	Helm   []string
	Runner runner.Runner
}

func (s *HelpSource) Fingerprint(ctx context.Context, command, subcommand string) (string, error) {
	version, err := s.output(ctx, "version", "--short")
	if err != nil {
		return "", fmt.Errorf("getting helm version: %w", err)
	}

	if subcommand == "" {
		return version, nil
	}

	// Subcommands of plugins such as helm-diff are versioned separately.
	pluginVersion, err := s.output(ctx, command, "version")
	if err != nil {
		return "", fmt.Errorf("getting helm %s version: %w", command, err)
	}
	return version + " " + pluginVersion, nil
}

func (s *HelpSource) Flags(ctx context.Context, command, subcommand string) ([]FlagSpec, error) {
	args := []string{command}
	if subcommand != "" {
		args = append(args, subcommand)
	}
	args = append(args, "--help")

	help, err := s.output(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("getting help for helm %s: %w", strings.Join(args[:len(args)-1], " "), err)
	}
	return ParseHelp(help), nil
}

func (s *HelpSource) output(ctx context.Context, args ...string) (string, error) {
	out, err := runner.Output(ctx, s.Runner, runner.Invocation{
		Command: append(slices.Clone(s.Helm), args...),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
