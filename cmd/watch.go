package cmd

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/nibzard/yoshi-config/internal/config"
	"github.com/nibzard/yoshi-config/internal/manifest"
)

// watchCommand prints the resolved configuration, then prints it again
// every time the manifest or a config file changes. It returns when ctx is
// cancelled.
func watchCommand(ctx context.Context, g globals, args []string) error {
	fs := flag.NewFlagSet("yoshi-config watch", flag.ContinueOnError)
	fs.SetOutput(g.stderr)
	format, secure := outputFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	render := func() (*config.Sources, error) {
		cfg, sources, err := config.Load(g.loadOptions())
		if err != nil {
			return nil, err
		}
		useSecure := cfg.Servers.CDN.SSL
		if secureSet(fs) {
			useSecure = *secure
		}
		if err := writeSnapshot(g.stdout, cfg.Snapshot(useSecure), *format); err != nil {
			return nil, err
		}
		return sources, nil
	}

	sources, err := render()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(g.workDir, sources)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		g.logger.Debug("watching", "dir", dir)
	}

	relevant := map[string]bool{manifest.FileName: true}
	for _, name := range config.FileNames() {
		relevant[name] = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant[filepath.Base(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			g.logger.Info("config changed", "file", event.Name)
			if _, err := render(); err != nil {
				g.logger.Error("reloading config", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Error("watcher", "err", err)
		}
	}
}

// watchDirs returns every directory that config discovery searches, from
// the working directory up to the manifest directory, plus the directories
// holding the loaded inputs. Directories are watched instead of files so
// that editors replacing a file on save are still noticed.
func watchDirs(workDir string, sources *config.Sources) ([]string, error) {
	if workDir == "" {
		workDir = "."
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve work dir: %w", err)
	}

	seen := map[string]bool{}
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	add(abs)
	if sources.ManifestPath != "" {
		stop := filepath.Dir(sources.ManifestPath)
		if isAncestor(stop, abs) {
			for dir := abs; dir != stop; dir = filepath.Dir(dir) {
				add(dir)
			}
			add(stop)
		}
	}
	for _, p := range sources.WatchPaths() {
		add(filepath.Dir(p))
	}
	return dirs, nil
}

// isAncestor reports whether dir is parent or dir itself.
func isAncestor(parent, dir string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
