package workflows

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/helm-secrets/internal/audit"
	kerrors "github.com/PolarWolf314/helm-secrets/internal/errors"
	logger "github.com/PolarWolf314/helm-secrets/internal/logging"
	"github.com/PolarWolf314/helm-secrets/internal/sops"
	"github.com/PolarWolf314/helm-secrets/internal/utils"
)

// Deps are the collaborators shared by the file workflows.
type Deps struct {
	Sops *sops.Client

	// Suffix names decrypted siblings, see secrets.DecryptedPath.
	Suffix string

	Logger logger.Logger
	Trail  *audit.Trail
}

// requireFile returns ErrFileNotFound unless path exists.
func requireFile(path string) error {
	exists, err := utils.FileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
	}
	return nil
}

// removeFile deletes path; a file that is already gone is not an error.
func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
