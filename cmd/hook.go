package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nibzard/yoshi-config/internal/config"
	"github.com/nibzard/yoshi-config/internal/hooks"
)

// hookCommand runs a hook from the resolved configuration, or lists the
// configured hooks when no name is given.
func hookCommand(ctx context.Context, g globals, args []string) error {
	fs := flag.NewFlagSet("yoshi-config hook", flag.ContinueOnError)
	fs.SetOutput(g.stderr)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	cfg, sources, err := config.Load(g.loadOptions())
	if err != nil {
		return err
	}

	if fs.NArg() == 0 {
		for _, name := range hooks.Names(cfg.Hooks) {
			fmt.Fprintf(g.stdout, "%s: %v\n", name, cfg.Hooks[name])
		}
		return nil
	}
	if fs.NArg() > 1 {
		return errors.New("hook takes a single hook name")
	}

	// Hooks run from the project root, next to package.json.
	workDir := g.workDir
	if sources.ManifestPath != "" {
		workDir = filepath.Dir(sources.ManifestPath)
	}

	name := fs.Arg(0)
	result, err := hooks.Invoke(ctx, cfg.Hooks, name, hooks.Options{
		WorkDir: workDir,
		Stdout:  g.stdout,
		Stderr:  g.stderr,
		Env:     []string{"YOSHI_HOOK=" + name},
	})
	if err != nil {
		return err
	}
	if !result.Ran {
		g.logger.Info("no hook configured", "name", name)
		return nil
	}
	g.logger.Debug("hook finished", "name", name, "command", strings.Join(result.Command, " "))
	return nil
}
