// Package filex contains filesystem helpers for the local client state.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path, so that a
// database file such as "~/.examhub/examhub.db" can be opened on first run.
// A leading "~/" is expanded to the user's home directory. The expanded
// path is returned.
func EnsureParentDir(path string) (string, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(expanded)
	if dir == "." || dir == "" {
		return expanded, nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return expanded, nil
}

func expandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
