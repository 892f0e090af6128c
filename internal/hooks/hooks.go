// Package hooks runs the shell commands configured under "hooks".
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"time"
)

// waitDelay bounds how long a cancelled hook may keep its output pipes open
// through child processes.
const waitDelay = 2 * time.Second

// Options configures a hook invocation.
type Options struct {
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
	// Env is appended to the process environment.
	Env []string
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Name     string
	Command  []string
	ExitCode int
}

// Names returns the configured hook names in sorted order.
func Names(hooks map[string]any) []string {
	names := make([]string, 0, len(hooks))
	for name := range hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the hook registered under name through the system shell. A
// missing or empty hook is not an error; Result.Ran reports whether a
// command was started.
func Invoke(ctx context.Context, hooks map[string]any, name string, opts Options) (Result, error) {
	value, ok := hooks[name]
	if !ok || value == nil {
		return Result{Name: name}, nil
	}
	command, ok := value.(string)
	if !ok {
		return Result{Name: name}, fmt.Errorf("hook %q must be a string command, got %T", name, value)
	}
	if command == "" {
		return Result{Name: name}, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, shell(), shellFlag(), command)
	cmd.WaitDelay = waitDelay
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Name:     name,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook %q failed: %w", name, err)
	}
	return result, nil
}

func shell() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return "sh"
}

func shellFlag() string {
	if runtime.GOOS == "windows" {
		return "/C"
	}
	return "-c"
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
