// Package hooks provides tests for configured hook invocation.
package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell syntax differs on windows")
	}
}

// TestInvoke tests the Invoke function with various scenarios.
func TestInvoke(t *testing.T) {
	t.Run("missing hook does not run", func(t *testing.T) {
		result, err := Invoke(context.Background(), map[string]any{}, "prelint", Options{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Ran {
			t.Error("expected Ran to be false")
		}
	})

	t.Run("empty command does not run", func(t *testing.T) {
		result, err := Invoke(context.Background(), map[string]any{"prelint": ""}, "prelint", Options{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Ran {
			t.Error("expected Ran to be false")
		}
	})

	t.Run("non string hook returns error", func(t *testing.T) {
		_, err := Invoke(context.Background(), map[string]any{"prelint": true}, "prelint", Options{})
		if err == nil {
			t.Fatal("expected error for non-string hook")
		}
	})

	t.Run("successful command captures output", func(t *testing.T) {
		skipOnWindows(t)
		var stdout bytes.Buffer
		result, err := Invoke(context.Background(), map[string]any{"prelint": "echo linting"}, "prelint", Options{
			Stdout: &stdout,
			Stderr: &bytes.Buffer{},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !result.Ran || result.ExitCode != 0 {
			t.Errorf("unexpected result %+v", result)
		}
		if strings.TrimSpace(stdout.String()) != "linting" {
			t.Errorf("stdout: got %q", stdout.String())
		}
		if diff := cmp.Diff([]string{"sh", "-c", "echo linting"}, result.Command); diff != "" {
			t.Errorf("Command mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("failing command reports exit code", func(t *testing.T) {
		skipOnWindows(t)
		result, err := Invoke(context.Background(), map[string]any{"prelint": "exit 3"}, "prelint", Options{
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		})
		if err == nil {
			t.Fatal("expected error for failing hook")
		}
		if result.ExitCode != 3 {
			t.Errorf("ExitCode: got %d, want 3", result.ExitCode)
		}
	})

	t.Run("runs in work dir with extra env", func(t *testing.T) {
		skipOnWindows(t)
		dir := t.TempDir()
		_, err := Invoke(context.Background(), map[string]any{"prelint": `echo "$YOSHI_HOOK" > hook.out`}, "prelint", Options{
			WorkDir: dir,
			Env:     []string{"YOSHI_HOOK=prelint"},
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "hook.out"))
		if err != nil {
			t.Fatalf("read hook output: %v", err)
		}
		if strings.TrimSpace(string(data)) != "prelint" {
			t.Errorf("hook output: got %q", data)
		}
	})

	t.Run("context cancellation stops the hook", func(t *testing.T) {
		skipOnWindows(t)
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		start := time.Now()
		_, err := Invoke(ctx, map[string]any{"prelint": "sleep 5"}, "prelint", Options{
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		})
		if err == nil {
			t.Fatal("expected error for cancelled hook")
		}
		if time.Since(start) > 4*time.Second {
			t.Error("hook was not stopped by context cancellation")
		}
	})
}

func TestNames(t *testing.T) {
	got := Names(map[string]any{"prelint": "a", "postbuild": "b"})
	if diff := cmp.Diff([]string{"postbuild", "prelint"}, got); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}
