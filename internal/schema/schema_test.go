package schema

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateAcceptsKnownKeys(t *testing.T) {
	raw := map[string]any{
		"hmr":               false,
		"clientProjectName": "acme-client",
		"servers": map[string]any{
			"cdn": map[string]any{"port": int64(4000), "ssl": true, "dir": "dist"},
		},
		"externals":                  []any{"react"},
		"externalUnprocessedModules": []string{"my-lib/src"},
		"resolveAlias":               map[string]any{"@": "./src"},
	}
	if err := Validate(raw); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateEmpty(t *testing.T) {
	if err := Validate(nil); err != nil {
		t.Errorf("nil config: %v", err)
	}
	if err := Validate(map[string]any{}); err != nil {
		t.Errorf("empty config: %v", err)
	}
}

func TestValidateReportsIssues(t *testing.T) {
	raw := map[string]any{
		"hmr":     "yes",
		"unknown": 1,
		"servers": map[string]any{
			"cdn": map[string]any{"port": "3200"},
		},
	}

	err := Validate(raw)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !IsOptionsValidationError(err) {
		t.Fatalf("expected *OptionsValidationError, got %T: %v", err, err)
	}

	var ve *OptionsValidationError
	errors.As(err, &ve)
	var paths []string
	for _, issue := range ve.Issues {
		paths = append(paths, issue.Path)
	}
	want := []string{"", "hmr", "servers.cdn.port"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("issue paths mismatch (-want +got):\n%s", diff)
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "Invalid configuration object.") {
		t.Errorf("unexpected message prefix: %q", msg)
	}
	if !strings.Contains(msg, " - config.servers.cdn.port ") {
		t.Errorf("message should name the offending path: %q", msg)
	}
	if !strings.Contains(msg, "unknown") {
		t.Errorf("message should name the unknown key: %q", msg)
	}
}

func TestIsOptionsValidationErrorWrapped(t *testing.T) {
	err := fmt.Errorf("resolve: %w", &OptionsValidationError{})
	if !IsOptionsValidationError(err) {
		t.Error("wrapped error should be detected")
	}
	if IsOptionsValidationError(errors.New("boom")) {
		t.Error("plain error must not be treated as a schema mismatch")
	}
}

func TestValidateUnserializableIsFatal(t *testing.T) {
	err := Validate(map[string]any{"hooks": make(chan int)})
	if err == nil {
		t.Fatal("expected error")
	}
	if IsOptionsValidationError(err) {
		t.Error("marshal failure must not be downgraded to a schema mismatch")
	}
}

func TestNewValidatorBadSchema(t *testing.T) {
	if _, err := NewValidator("broken.json", `{"type": 5}`); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/hmr", "hmr"},
		{"/servers/cdn/port", "servers.cdn.port"},
		{"/externals/0", "externals[0]"},
		{"/resolveAlias/a~1b", "resolveAlias.a/b"},
		{"#/hooks/x~0y", "hooks.x~y"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
