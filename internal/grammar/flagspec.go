package grammar

import "strings"

// FlagSpec describes one flag of a wrapped command.
type FlagSpec struct {
	// Short is the single-character form without the dash, if any.
	Short string `toml:"short,omitempty"`

	// Long is the long form without the dashes, if any.
	Long string `toml:"long,omitempty"`

	// TakesValue is set for flags followed by a value.
	TakesValue bool `toml:"takes_value"`

	// OptionalValue is set for flags whose value may be omitted, e.g.
	// --dry-run[=server]. Such a value can only be given with "=".
	OptionalValue bool `toml:"optional_value,omitempty"`
}

// Name returns the long form, or the short form for flags without one.
func (f FlagSpec) Name() string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

// Is reports whether token ("-f", "--values") names this flag.
func (f FlagSpec) Is(token string) bool {
	switch {
	case strings.HasPrefix(token, "--"):
		return f.Long != "" && token[2:] == f.Long
	case strings.HasPrefix(token, "-"):
		return f.Short != "" && token[1:] == f.Short
	}
	return false
}

// Grammar is the flag set of one wrapped command.
type Grammar struct {
	Flags []FlagSpec
}

// New builds a Grammar from flags. Later duplicates of a long name are
// dropped, as are short forms already claimed by an earlier flag.
func New(flags []FlagSpec) *Grammar {
	g := &Grammar{}
	seenLong := make(map[string]bool)
	seenShort := make(map[string]bool)

	for _, f := range flags {
		if f.Long == "" && f.Short == "" {
			continue
		}
		if f.Long != "" {
			if seenLong[f.Long] {
				continue
			}
			seenLong[f.Long] = true
		}
		if f.Short != "" && seenShort[f.Short] {
			if f.Long == "" {
				continue
			}
			f.Short = ""
		}
		if f.Short != "" {
			seenShort[f.Short] = true
		}
		g.Flags = append(g.Flags, f)
	}

	return g
}

// ShortSpec renders the short flags getopt style: each character followed by
// ":" when it takes a value, "::" when the value is optional.
func (g *Grammar) ShortSpec() string {
	var b strings.Builder
	for _, f := range g.Flags {
		if f.Short == "" {
			continue
		}
		b.WriteString(f.Short)
		b.WriteString(arity(f))
	}
	return b.String()
}

// LongSpec renders the long flags getopt style, comma separated.
func (g *Grammar) LongSpec() string {
	var parts []string
	for _, f := range g.Flags {
		if f.Long == "" {
			continue
		}
		parts = append(parts, f.Long+arity(f))
	}
	return strings.Join(parts, ",")
}

// Lookup returns the flag named by token ("-f", "--values").
func (g *Grammar) Lookup(token string) (FlagSpec, bool) {
	for _, f := range g.Flags {
		if f.Is(token) {
			return f, true
		}
	}
	return FlagSpec{}, false
}

func arity(f FlagSpec) string {
	switch {
	case f.OptionalValue:
		return "::"
	case f.TakesValue:
		return ":"
	}
	return ""
}
