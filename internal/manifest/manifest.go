// Package manifest reads the project's package.json.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// FileName is the manifest file name searched for by Find.
const FileName = "package.json"

// Manifest holds the package.json fields the build configuration depends on.
type Manifest struct {
	Name             string         `json:"name"`
	Unpkg            any            `json:"unpkg,omitempty"`
	Dependencies     map[string]any `json:"dependencies,omitempty"`
	PeerDependencies map[string]any `json:"peerDependencies,omitempty"`
	Module           any            `json:"module,omitempty"`
	Babel            any            `json:"babel,omitempty"`
	Jest             map[string]any `json:"jest,omitempty"`

	// Yoshi is the inline build configuration section, if any.
	Yoshi map[string]any `json:"yoshi,omitempty"`

	// Path is where the manifest was read from; empty for in-memory manifests.
	Path string `json:"-"`
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Find walks up from startDir and returns the path of the nearest
// package.json, or "" if there is none.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start dir: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// HasDependency reports whether name is listed with a truthy value in
// dependencies or peerDependencies.
func (m *Manifest) HasDependency(name string) bool {
	if m == nil {
		return false
	}
	return Truthy(m.Dependencies[name]) || Truthy(m.PeerDependencies[name])
}

// IsEsModule reports whether the manifest declares an ES module entry.
func (m *Manifest) IsEsModule() bool {
	if m == nil {
		return false
	}
	return Truthy(m.Module)
}

// Truthy applies JavaScript truthiness: nil, false, 0, NaN and "" are falsy,
// everything else (including empty tables and arrays) is truthy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int64:
		return x != 0
	case json.Number:
		return x.String() != "0"
	}
	return true
}
