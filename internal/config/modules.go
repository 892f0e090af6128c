package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// moduleFilter decides which files skip transpilation: sources inside the
// working directory that are not under node_modules, plus node_modules
// packages matching one of the configured patterns.
type moduleFilter struct {
	workDir  string
	patterns []string
	external []*regexp.Regexp
}

func newModuleFilter(workDir string, extra []string) (*moduleFilter, error) {
	patterns := make([]string, 0, len(BuiltinUnprocessedModules)+len(extra))
	patterns = append(patterns, BuiltinUnprocessedModules...)
	patterns = append(patterns, extra...)

	f := &moduleFilter{
		workDir:  workDir,
		patterns: patterns,
		external: make([]*regexp.Regexp, 0, len(patterns)),
	}
	for _, p := range patterns {
		re, err := regexp.Compile("node_modules/" + p)
		if err != nil {
			return nil, fmt.Errorf("compile unprocessed module pattern %q: %w", p, err)
		}
		f.external = append(f.external, re)
	}
	return f, nil
}

func (f *moduleFilter) match(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range f.external {
		if re.MatchString(slashed) {
			return true
		}
	}
	return f.isProjectSource(path)
}

// isProjectSource compares by plain prefix, so a sibling directory sharing
// the working directory's name prefix also counts.
func (f *moduleFilter) isProjectSource(path string) bool {
	if f.workDir == "" {
		return false
	}
	clean := filepath.Clean(path)
	return strings.HasPrefix(clean, f.workDir) && !strings.Contains(clean, "node_modules")
}
