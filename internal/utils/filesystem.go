package utils

import (
	"errors"
	"fmt"
	"os"
)

// FileExists reports whether something exists at path. Errors other than
// "not found", such as permission problems, are returned.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("error checking %s: %w", path, err)
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("error checking %s: %w", path, err)
}

// IsNewer reports whether path was modified after reference. A missing path
// is never newer.
func IsNewer(path, reference string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	refInfo, err := os.Stat(reference)
	if err != nil {
		return false, err
	}

	return info.ModTime().After(refInfo.ModTime()), nil
}
