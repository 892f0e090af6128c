package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/yoshi-config/internal/manifest"
	"github.com/nibzard/yoshi-config/internal/rawconfig"
)

// LoadOptions controls where Load looks for its inputs.
type LoadOptions struct {
	// WorkDir is where the search starts. Defaults to the process working
	// directory.
	WorkDir string
	// Environ supplies YOSHI_* overrides. Nil reads the process environment.
	Environ map[string]string
	// Logger receives the schema warning. Defaults to stderr.
	Logger *log.Logger
}

// Inputs are the loaded, not yet resolved, configuration inputs.
type Inputs struct {
	Raw      rawconfig.RawConfig
	Manifest *manifest.Manifest
	Sources  *Sources
	WorkDir  string
}

// Load finds and reads the project manifest and raw config, applies
// environment overrides and resolves the result.
func Load(opts LoadOptions) (*ProjectConfig, *Sources, error) {
	in, err := LoadInputs(opts)
	if err != nil {
		return nil, nil, err
	}

	resolveOpts := []Option{WithWorkDir(in.WorkDir)}
	if opts.Logger != nil {
		resolveOpts = append(resolveOpts, WithLogger(opts.Logger))
	}
	cfg, err := Resolve(in.Raw, in.Manifest, resolveOpts...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, in.Sources, nil
}

// LoadInputs performs the discovery half of Load.
//  1. package.json is searched from WorkDir upwards; a missing manifest
//     yields an empty one.
//  2. The raw config is the first config file found between WorkDir and the
//     manifest directory, falling back to the manifest's yoshi section.
//  3. YOSHI_* environment variables override individual keys.
func LoadInputs(opts LoadOptions) (*Inputs, error) {
	workDir, err := resolveWorkDir(opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	sources := &Sources{}
	pkg := &manifest.Manifest{}

	manifestPath, err := manifest.Find(workDir)
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", manifest.FileName, err)
	}
	stopDir := ""
	if manifestPath != "" {
		pkg, err = manifest.Load(manifestPath)
		if err != nil {
			return nil, err
		}
		sources.ManifestPath = manifestPath
		stopDir = filepath.Dir(manifestPath)
	}

	configPath, err := findConfigFile(workDir, stopDir)
	if err != nil {
		return nil, fmt.Errorf("finding config file: %w", err)
	}

	var raw rawconfig.RawConfig
	switch {
	case configPath != "":
		raw, err = loadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
		sources.ConfigPath = configPath
	case pkg.Yoshi != nil:
		raw, err = rawconfig.Normalize(pkg.Yoshi)
		if err != nil {
			return nil, fmt.Errorf("loading %s%s: %w", manifestPath, ManifestSection, err)
		}
		sources.ConfigPath = manifestPath + ManifestSection
	default:
		raw = rawconfig.RawConfig{}
	}

	keys, err := applyEnv(raw, opts.Environ)
	if err != nil {
		return nil, err
	}
	sources.EnvOverrides = keys

	return &Inputs{
		Raw:      raw,
		Manifest: pkg,
		Sources:  sources,
		WorkDir:  workDir,
	}, nil
}

// loadConfigFile decodes a raw config file, choosing the format by
// extension. Files without a known extension are JSON.
func loadConfigFile(path string) (rawconfig.RawConfig, error) {
	var doc map[string]any
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &doc); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return rawconfig.Normalize(doc)
}
