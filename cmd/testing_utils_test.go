package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/runner"
	"github.com/PolarWolf314/helm-secrets/internal/runner/runnertest"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	color.NoColor = true
}

const encryptedYAML = `password: ENC[AES256_GCM,data:cGFzcw==,iv:aXY=,tag:dGFn,type:str]
sops:
    age: []
    lastmodified: "2024-03-01T10:00:00Z"
    version: 3.8.1
`

// installHelp is trimmed `helm install --help` output.
const installHelp = `Usage:
  helm install [NAME] [CHART] [flags]

Flags:
      --atomic                  if set, the installation process deletes the installation on failure
  -n, --namespace string        namespace scope for this request
      --set stringArray         set values on the command line
  -f, --values strings          specify values in a YAML file or a URL (can specify multiple)
      --wait                    if set, will wait until all resources are ready

Global Flags:
      --debug                   enable verbose output
`

// fakeTools simulates helm and sops.
type fakeTools struct {
	*runnertest.Fake

	helmVersion string
	helmCode    int
	sopsErr     error

	// decryptedDuringHelm records which decrypted files existed while helm ran.
	decryptedDuringHelm []string
}

func newFakeTools() *fakeTools {
	f := &fakeTools{helmVersion: "v3.14.0+g3fc9f4b"}
	f.Fake = &runnertest.Fake{Handler: f.handle}
	return f
}

func (f *fakeTools) handle(inv runner.Invocation) error {
	write := func(s string) error {
		if inv.Stdout == nil {
			return nil
		}
		_, err := io.WriteString(inv.Stdout, s)
		return err
	}

	cmd := inv.Command
	switch {
	case runnertest.HasPrefix(cmd, "sops"):
		if f.sopsErr != nil {
			return f.sopsErr
		}
		if dest := runnertest.ArgAfter(cmd, "--output"); dest != "" {
			return os.WriteFile(dest, []byte("password: pass\n"), 0600)
		}
		if runnertest.HasPrefix(cmd, "sops", "--decrypt") {
			return write("password: pass\n")
		}
		return nil
	case runnertest.HasPrefix(cmd, "helm", "version", "--short"):
		return write(f.helmVersion + "\n")
	case runnertest.HasPrefix(cmd, "helm", "diff", "version"):
		return write("3.9.4\n")
	case len(cmd) > 0 && cmd[len(cmd)-1] == "--help":
		return write(installHelp)
	case runnertest.HasPrefix(cmd, "helm"):
		for _, arg := range cmd {
			if strings.HasSuffix(arg, ".dec") {
				if _, err := os.Stat(arg); err == nil {
					f.decryptedDuringHelm = append(f.decryptedDuringHelm, arg)
				}
			}
		}
		if f.helmCode != 0 {
			return &kerrors.ToolError{Tool: "helm", Code: f.helmCode}
		}
	}
	return nil
}

// setupTestEnvironment points every setting at temporary locations and
// installs a fake runner. It returns a temporary working directory.
func setupTestEnvironment(t *testing.T) (string, *fakeTools) {
	t.Helper()

	for _, key := range []string{
		"HELM_SECRETS_DEC_SUFFIX", "TILLER_HOST", "HELM_PLUGIN_DIR", "HELM_SECRETS_AUDIT_LOG",
		"HELM_SECRETS_VERBOSE", "HELM_SECRETS_DEBUG", "HELM_DEBUG",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("HELM_BIN", "helm")
	t.Setenv("HELM_SECRETS_SOPS_BIN", "sops")
	t.Setenv("HELM_SECRETS_CACHE_DIR", filepath.Join(t.TempDir(), "cache"))

	tools := newFakeTools()
	ResetGlobalState()
	SetRunner(tools)
	t.Cleanup(ResetGlobalState)

	return t.TempDir(), tools
}

// createTestCLI returns the root command set up to run args.
func createTestCLI(args []string, stdout, stderr io.Writer) *cobra.Command {
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	resetFlags(RootCmd)
	RootCmd.SetArgs(args)
	RootCmd.SetOut(stdout)
	RootCmd.SetErr(stderr)
	return RootCmd
}

// resetFlags restores every flag of c and its subcommands to its default,
// since cobra keeps parsed values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes args and returns stdout, stderr and the error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := createTestCLI(args, &stdout, &stderr).Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestFile is a helper to write test files, creating parent directories.
func writeTestFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("Failed to create test dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}
