package wrapper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/grammar"
	logger "github.com/PolarWolf314/helm-secrets/internal/logging"
	"github.com/PolarWolf314/helm-secrets/internal/runner"
	"github.com/PolarWolf314/helm-secrets/internal/secrets"
	"github.com/PolarWolf314/helm-secrets/internal/sops"
	"github.com/PolarWolf314/helm-secrets/internal/utils"

	"github.com/samber/lo"
)

// Grammars provides the flag grammar of a helm command. *grammar.Cache
// implements it.
type Grammars interface {
	Get(ctx context.Context, command, subcommand string) (*grammar.Grammar, error)
}

// DecryptionRecord ties a secrets file named on the command line to the path
// handed to helm instead.
type DecryptionRecord struct {
	Source string
	Path   string

	// Fresh is set when Path was created by this run and must be removed.
	Fresh bool
}

// Wrapper runs helm commands with secrets values files decrypted.
type Wrapper struct {
	// Helm is the helm executable followed by any fixed arguments.
	Helm []string

	// TillerHost, when set, is passed as --host ahead of the command.
	TillerHost string

	// Suffix names decrypted siblings, see secrets.DecryptedPath.
	Suffix string

	Grammars Grammars
	Sops     *sops.Client
	Runner   runner.Runner
	Logger   logger.Logger
	Trail    *audit.Trail
}

// Run executes `helm command [subcommand] args...` and returns helm's exit
// code. A non-nil error means helm was never run to completion: the
// arguments did not parse, a secrets file is missing or could not be
// decrypted, or helm could not be started.
func (w *Wrapper) Run(ctx context.Context, command, subcommand string, args []string) (int, error) {
	entry := audit.NewEntry(strings.TrimSpace(command + " " + subcommand))

	code, err := w.run(ctx, command, subcommand, args, &entry)
	entry.ExitCode = code
	w.Trail.Record(entry, err)

	return code, err
}

func (w *Wrapper) run(ctx context.Context, command, subcommand string, args []string, entry *audit.Entry) (int, error) {
	g, err := w.Grammars.Get(ctx, command, subcommand)
	if err != nil {
		return kerrors.ExitCode(err), w.Logger.ErrorfAndReturn("failed to load flags of helm %s: %w", command, err)
	}

	inv, err := grammar.Parse(g, args)
	if err != nil {
		return kerrors.ExitCode(err), err
	}

	options, records, err := w.decryptValues(ctx, inv.Options)
	if err != nil {
		w.cleanup(records)
		return kerrors.ExitCode(err), err
	}
	entry.Files = lo.Map(records, func(r DecryptionRecord, _ int) string { return r.Source })

	vector := w.vector(command, subcommand, inv.Args, options)
	entry.Command = vector
	w.Logger.Debugf("Running %s", strings.Join(vector, " "))

	helmErr := w.Runner.Run(ctx, runner.Interactive(runner.Invocation{Command: vector}))
	w.cleanup(records)

	code := runner.ExitCode(helmErr)
	if code < 0 {
		return 1, helmErr
	}
	if code != 0 {
		w.Logger.Infof("helm %s exited with status %d", command, code)
	}
	return code, nil
}

// IsValuesFlag reports whether f names values files.
func IsValuesFlag(f grammar.FlagSpec) bool {
	return f.Short == "f" || f.Long == "values"
}

// decryptValues substitutes decrypted siblings for the secrets files named
// by values flags. The records created so far are returned even on error so
// the caller can clean them up.
func (w *Wrapper) decryptValues(ctx context.Context, options []grammar.Option) ([]grammar.Option, []DecryptionRecord, error) {
	var records []DecryptionRecord
	bySource := make(map[string]DecryptionRecord)

	out := slices.Clone(options)
	for i, o := range out {
		if !IsValuesFlag(o.Flag) || o.Implicit || !secrets.IsSecretsFile(o.Value) {
			continue
		}

		record, seen := bySource[o.Value]
		if !seen {
			var err error
			record, err = w.prepare(ctx, o.Value)
			if err != nil {
				return nil, records, err
			}
			bySource[o.Value] = record
			records = append(records, record)
		}

		out[i].Value = record.Path
	}

	return out, records, nil
}

// prepare makes a helm-readable version of the secrets file at path.
func (w *Wrapper) prepare(ctx context.Context, path string) (DecryptionRecord, error) {
	exists, err := utils.FileExists(path)
	if err != nil {
		return DecryptionRecord{}, err
	}
	if !exists {
		return DecryptionRecord{}, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
	}

	encrypted, err := secrets.IsEncrypted(path)
	if err != nil {
		return DecryptionRecord{}, err
	}
	if !encrypted {
		w.Logger.Debugf("%s is not encrypted, passing it as-is", path)
		return DecryptionRecord{Source: path, Path: path}, nil
	}

	dec := secrets.DecryptedPath(path, w.Suffix)
	newer, err := utils.IsNewer(dec, path)
	if err != nil {
		return DecryptionRecord{}, err
	}
	if newer {
		w.Logger.Infof("Using existing decrypted file %s", dec)
		return DecryptionRecord{Source: path, Path: dec}, nil
	}

	w.Logger.Infof("Decrypting %s", path)
	if err := w.Sops.Decrypt(ctx, path, secrets.FormatOf(path), dec); err != nil {
		return DecryptionRecord{}, fmt.Errorf("failed to decrypt %s: %w", path, err)
	}
	return DecryptionRecord{Source: path, Path: dec, Fresh: true}, nil
}

// vector builds the helm command line.
func (w *Wrapper) vector(command, subcommand string, args []string, options []grammar.Option) []string {
	vector := slices.Clone(w.Helm)
	if w.TillerHost != "" {
		vector = append(vector, "--host", w.TillerHost)
	}

	vector = append(vector, command)
	if subcommand != "" {
		vector = append(vector, subcommand)
	}
	vector = append(vector, args...)

	return append(vector, lo.FlatMap(options, func(o grammar.Option, _ int) []string {
		return o.Tokens()
	})...)
}

// cleanup removes the decrypted siblings created by this run.
func (w *Wrapper) cleanup(records []DecryptionRecord) {
	for _, r := range lo.Filter(records, func(r DecryptionRecord, _ int) bool { return r.Fresh }) {
		w.Logger.Debugf("Removing %s", r.Path)
		if err := removeFile(r.Path); err != nil {
			w.Logger.Warnf("Failed to remove decrypted file %s: %v", r.Path, err)
		}
	}
}

// removeFile deletes path; a file that is already gone is not an error.
func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
