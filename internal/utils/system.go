package utils

import (
	"os"
	"os/user"
)

// GetUsername returns the current username, falling back to $USER when the
// user database is unavailable (e.g. scratch containers).
func GetUsername() (string, error) {
	u, err := user.Current()
	if err == nil {
		return u.Username, nil
	}
	if name := os.Getenv("USER"); name != "" {
		return name, nil
	}
	return "", err
}
