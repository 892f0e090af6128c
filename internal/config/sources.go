package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestSection is the ConfigPath suffix used when the raw config came
// from package.json.
const ManifestSection = "#yoshi"

// configFileNames are checked in order in every directory.
var configFileNames = []string{
	"yoshi.config.toml",
	"yoshi.config.yaml",
	"yoshi.config.yml",
	"yoshi.config.json",
	".yoshirc",
}

// Sources records where the loaded inputs came from.
type Sources struct {
	// ManifestPath is the package.json that was read, "" if none was found.
	ManifestPath string
	// ConfigPath is the raw config file, or ManifestPath+ManifestSection when
	// the yoshi section of package.json was used. "" means defaults only.
	ConfigPath string
	// EnvOverrides lists the config keys overridden from the environment.
	EnvOverrides []string
}

// WatchPaths returns the files whose changes affect the loaded config.
func (s *Sources) WatchPaths() []string {
	var paths []string
	if s.ManifestPath != "" {
		paths = append(paths, s.ManifestPath)
	}
	if s.ConfigPath != "" && s.ConfigPath != s.ManifestPath+ManifestSection {
		paths = append(paths, s.ConfigPath)
	}
	return paths
}

// findConfigFile walks up from startDir looking for a config file. The walk
// stops at stopDir (the manifest directory) when it is an ancestor.
func findConfigFile(startDir, stopDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start dir: %w", err)
	}
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("stat %s: %w", candidate, err)
			}
		}
		if dir == stopDir {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FileNames returns the config file names Load looks for, in priority order.
func FileNames() []string {
	return append([]string(nil), configFileNames...)
}
