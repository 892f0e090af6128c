package config

import (
	"fmt"
)

// Default values.
const (
	DefaultCDNPort = 3200
	DefaultEntry   = "./client"

	// SingleModuleClientDist is where client assets are served from when the
	// project builds its own client.
	SingleModuleClientDist = "dist/statics"
	// MultipleModulesClientDist is the dist directory inside a separate
	// client package referenced by clientProjectName.
	MultipleModulesClientDist = "dist"
)

// BuiltinUnprocessedModules are always excluded from transpilation.
var BuiltinUnprocessedModules = []string{"wix-style-react/src"}

// ProjectConfig is the resolved build configuration. It is read-only once
// Resolve returns.
type ProjectConfig struct {
	Name  string
	Unpkg any

	Specs Specs

	Hooks              map[string]any
	HMR                bool
	LiveReload         bool
	Exports            string
	ClientProjectName  string
	ClientFilesPath    string
	IsUniversalProject bool

	IsAngularProject bool
	IsReactProject   bool
	IsEsModule       bool

	Servers Servers

	Entry        any
	DefaultEntry string
	SplitChunks  bool

	SeparateCSS      bool
	CSSModules       bool
	TPAStyle         bool
	EnhancedTPAStyle bool

	Features  map[string]any
	Externals any

	Babel                   any
	TranspileTests          bool
	RunIndividualTranspiler bool
	JestConfig              map[string]any
	PetriSpecsConfig        map[string]any
	PerformanceBudget       any
	ResolveAlias            map[string]any
	KeepFunctionNames       bool
	UMDNamedDefine          bool

	modules *moduleFilter
}

// Specs are the test spec globs; nil when not configured.
type Specs struct {
	Node    any
	Browser any
}

// Servers groups the dev server settings.
type Servers struct {
	CDN CDNServer
}

// CDNServer is the local asset server.
type CDNServer struct {
	Port int
	SSL  bool
	// Dir is the configured servers.cdn.dir, "" when not set.
	Dir string

	url    string
	hasURL bool
}

// URL returns the CDN base URL. An explicit servers.cdn.url is returned
// verbatim; otherwise the URL points at localhost on the resolved port using
// https when secure is true.
func (c CDNServer) URL(secure bool) string {
	if c.hasURL {
		return c.url
	}
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://localhost:%d/", scheme, c.Port)
}

// UnprocessedModules reports whether the file at path should be excluded
// from the transpile step.
func (c *ProjectConfig) UnprocessedModules(path string) bool {
	if c == nil || c.modules == nil {
		return false
	}
	return c.modules.match(path)
}

// UnprocessedModulePatterns returns the module patterns matched under
// node_modules, builtin entries first.
func (c *ProjectConfig) UnprocessedModulePatterns() []string {
	if c == nil || c.modules == nil {
		return nil
	}
	return append([]string(nil), c.modules.patterns...)
}
