// Package runnertest provides a recording runner.Runner for tests.
package runnertest

import (
	"context"
	"slices"
	"strings"

	"github.com/PolarWolf314/helm-secrets/internal/runner"
)

// Fake records every invocation and delegates the outcome to Handler.
// A nil Handler makes every invocation succeed with no output.
type Fake struct {
	Calls   []runner.Invocation
	Handler func(inv runner.Invocation) error
}

func (f *Fake) Run(_ context.Context, inv runner.Invocation) error {
	inv.Command = slices.Clone(inv.Command)
	f.Calls = append(f.Calls, inv)
	if f.Handler == nil {
		return nil
	}
	return f.Handler(inv)
}

// Count returns how many recorded invocations start with prefix.
func (f *Fake) Count(prefix ...string) int {
	n := 0
	for _, call := range f.Calls {
		if HasPrefix(call.Command, prefix...) {
			n++
		}
	}
	return n
}

// Last returns the last recorded invocation starting with prefix.
func (f *Fake) Last(prefix ...string) (runner.Invocation, bool) {
	for i := len(f.Calls) - 1; i >= 0; i-- {
		if HasPrefix(f.Calls[i].Command, prefix...) {
			return f.Calls[i], true
		}
	}
	return runner.Invocation{}, false
}

// HasPrefix reports whether command starts with prefix.
func HasPrefix(command []string, prefix ...string) bool {
	return len(command) >= len(prefix) && slices.Equal(command[:len(prefix)], prefix)
}

// ArgAfter returns the argument following flag in command.
func ArgAfter(command []string, flag string) string {
	i := slices.Index(command, flag)
	if i < 0 || i+1 >= len(command) {
		return ""
	}
	return command[i+1]
}

// Joined renders a command for failure messages.
func Joined(command []string) string {
	return strings.Join(command, " ")
}
