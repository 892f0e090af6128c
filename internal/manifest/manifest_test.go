package manifest

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestHasDependency(t *testing.T) {
	tests := []struct {
		name string
		json string
		dep  string
		want bool
	}{
		{"dependencies", `{"dependencies":{"react":"^18.0.0"}}`, "react", true},
		{"peer dependencies", `{"peerDependencies":{"angular":"1.x"}}`, "angular", true},
		{"absent", `{"dependencies":{"lodash":"4"}}`, "react", false},
		{"empty version is falsy", `{"dependencies":{"react":""}}`, "react", false},
		{"no dependency sections", `{"name":"app"}`, "react", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.json))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := m.HasDependency(tt.dep); got != tt.want {
				t.Errorf("HasDependency(%q): got %v, want %v", tt.dep, got, tt.want)
			}
		})
	}
}

func TestNilManifest(t *testing.T) {
	var m *Manifest
	if m.HasDependency("react") {
		t.Error("nil manifest has no dependencies")
	}
	if m.IsEsModule() {
		t.Error("nil manifest is not an ES module")
	}
}

func TestIsEsModule(t *testing.T) {
	m, err := Parse([]byte(`{"module":"dist/es/index.js"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !m.IsEsModule() {
		t.Error("expected ES module")
	}

	m, err = Parse([]byte(`{"module":false}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.IsEsModule() {
		t.Error("module=false is not an ES module")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"x", true},
		{float64(0), false},
		{float64(2), true},
		{math.NaN(), false},
		{0, false},
		{map[string]any{}, true},
		{[]any{}, true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.value); got != tt.want {
			t.Errorf("Truthy(%#v): got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "client")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	pkgPath := filepath.Join(root, FileName)
	if err := os.WriteFile(pkgPath, []byte(`{"name":"acme"}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != pkgPath {
		t.Errorf("Find: got %q, want %q", got, pkgPath)
	}

	m, err := Load(got)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "acme" {
		t.Errorf("Name: got %q, want acme", m.Name)
	}
	if m.Path != pkgPath {
		t.Errorf("Path: got %q, want %q", m.Path, pkgPath)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"name":`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
