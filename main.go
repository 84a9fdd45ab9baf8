package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/helm-secrets/cmd"
	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	"github.com/PolarWolf314/helm-secrets/internal/ui"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// Tools report their own failures on stderr.
	var toolErr *kerrors.ToolError
	if !errors.As(err, &toolErr) {
		fmt.Fprintln(os.Stderr, ui.Failed(err.Error()))
	}
	os.Exit(kerrors.ExitCode(err))
}
