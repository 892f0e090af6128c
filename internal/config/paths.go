package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands a leading ~ to the user's home directory.
func expandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// resolveWorkDir returns an absolute, cleaned working directory, defaulting
// to the process working directory.
func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(expandPath(dir))
}
