package grammar

import (
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"

	"github.com/google/go-cmp/cmp"
)

// flatten renders parsed options the way they would be passed on.
func flatten(inv *Invocation) []string {
	var out []string
	for _, o := range inv.Options {
		out = append(out, o.Tokens()...)
	}
	return out
}

func TestParse(t *testing.T) {
	g := New(upgradeFlags)

	tests := []struct {
		name     string
		args     []string
		wantOpts []string
		wantArgs []string
	}{
		{
			name:     "options before positionals",
			args:     []string{"-f", "secrets.yaml", "release", "chart", "--set", "x=1"},
			wantOpts: []string{"--values", "secrets.yaml", "--set", "x=1"},
			wantArgs: []string{"release", "chart"},
		},
		{
			name:     "keeps option order",
			args:     []string{"--set", "a=1", "--values", "one.yaml", "--set", "b=2", "-f", "two.yaml"},
			wantOpts: []string{"--set", "a=1", "--values", "one.yaml", "--set", "b=2", "--values", "two.yaml"},
		},
		{
			name:     "attached values",
			args:     []string{"--values=one.yaml", "-ftwo.yaml", "-f=three.yaml", "release"},
			wantOpts: []string{"--values", "one.yaml", "--values", "two.yaml", "--values", "three.yaml"},
			wantArgs: []string{"release"},
		},
		{
			name:     "bool flags",
			args:     []string{"release", "--atomic", "--wait=false", "chart"},
			wantOpts: []string{"--atomic", "--wait=false"},
			wantArgs: []string{"release", "chart"},
		},
		{
			name:     "combined short flags",
			args:     []string{"-io", "json", "release"},
			wantOpts: []string{"--install", "--output", "json"},
			wantArgs: []string{"release"},
		},
		{
			name:     "optional value given",
			args:     []string{"--dry-run=server", "release"},
			wantOpts: []string{"--dry-run=server"},
			wantArgs: []string{"release"},
		},
		{
			name:     "optional value omitted",
			args:     []string{"--dry-run", "release"},
			wantOpts: []string{"--dry-run"},
			wantArgs: []string{"release"},
		},
		{
			name:     "double dash ends options",
			args:     []string{"--atomic", "release", "--", "--set", "-f"},
			wantOpts: []string{"--atomic"},
			wantArgs: []string{"release", "--set", "-f"},
		},
		{
			name: "nothing",
			args: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Parse(g, tt.args)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.args, err)
			}
			if diff := cmp.Diff(tt.wantOpts, flatten(inv)); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
			if len(tt.wantArgs) == 0 && len(inv.Args) == 0 {
				return
			}
			if diff := cmp.Diff(tt.wantArgs, inv.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	g := New(upgradeFlags)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown long flag", []string{"release", "--no-such-flag"}},
		{"unknown short flag", []string{"-z", "release"}},
		{"missing value", []string{"release", "--set"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(g, tt.args)
			if !errors.Is(err, kerrors.ErrParse) {
				t.Errorf("Expected ErrParse, got %v", err)
			}
		})
	}
}

func TestParse_ImplicitFlag(t *testing.T) {
	inv, err := Parse(New(upgradeFlags), []string{"--atomic", "--dry-run=client"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(inv.Options) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(inv.Options))
	}
	if !inv.Options[0].Implicit {
		t.Errorf("Expected --atomic to be implicit")
	}
	if inv.Options[1].Implicit || inv.Options[1].Value != "client" {
		t.Errorf("Expected --dry-run value client, got %+v", inv.Options[1])
	}
}

func TestOptionTokens_ShortOnly(t *testing.T) {
	g := New([]FlagSpec{{Short: "x", TakesValue: true}, {Short: "q"}})

	inv, err := Parse(g, []string{"-x", "1", "-q", "rest"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff([]string{"-x", "1", "-q"}, flatten(inv)); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}
