package grammar

import (
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"

	"github.com/spf13/pflag"
)

// implicitValue marks a flag given without a value. It cannot appear in a
// real argument.
const implicitValue = "\x00implicit"

// Option is one flag occurrence on the command line.
type Option struct {
	Flag FlagSpec

	// Value is the flag's value; meaningless when Implicit is set.
	Value string

	// Implicit is set for flags given without a value, e.g. --debug.
	Implicit bool
}

// Tokens renders the option back into command-line arguments.
func (o Option) Tokens() []string {
	name := "--" + o.Flag.Long
	if o.Flag.Long == "" {
		name = "-" + o.Flag.Short
	}

	switch {
	case o.Implicit:
		return []string{name}
	case o.Flag.TakesValue && !o.Flag.OptionalValue:
		return []string{name, o.Value}
	default:
		return []string{name + "=" + o.Value}
	}
}

// Invocation is a command line split into options and positional arguments.
type Invocation struct {
	// Options in the order they were given.
	Options []Option

	// Args are the positional arguments, including everything after "--".
	Args []string
}

// Parse splits args according to g.
func Parse(g *Grammar, args []string) (*Invocation, error) {
	fs := pflag.NewFlagSet("helm", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(true)
	fs.Usage = func() {}

	byName := make(map[string]FlagSpec, len(g.Flags))
	for _, f := range g.Flags {
		// Short-only flags use their character as name too; "-x" still
		// parses through the shorthand.
		pf := fs.VarPF(&discardValue{}, f.Name(), f.Short, "")
		if !f.TakesValue || f.OptionalValue {
			pf.NoOptDefVal = implicitValue
		}
		byName[f.Name()] = f
	}

	inv := &Invocation{}
	err := fs.ParseAll(args, func(pf *pflag.Flag, value string) error {
		f, ok := byName[pf.Name]
		if !ok {
			return fmt.Errorf("unknown flag --%s", pf.Name)
		}
		inv.Options = append(inv.Options, Option{
			Flag:     f,
			Value:    value,
			Implicit: value == implicitValue,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrParse, err)
	}

	inv.Args = fs.Args()
	return inv, nil
}

// discardValue satisfies pflag.Value; ParseAll hands every value to the
// callback instead of storing it.
type discardValue struct{}

func (*discardValue) String() string   { return "" }
func (*discardValue) Set(string) error { return nil }
func (*discardValue) Type() string     { return "string" }
