package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/yoshi-config/internal/logging"
	"github.com/nibzard/yoshi-config/internal/manifest"
	"github.com/nibzard/yoshi-config/internal/rawconfig"
	"github.com/nibzard/yoshi-config/internal/schema"
)

// Option customizes Resolve.
type Option func(*resolveOptions)

type resolveOptions struct {
	logger   *log.Logger
	workDir  string
	validate func(map[string]any) error
}

// WithLogger sets the logger that receives the schema warning. Defaults to
// a console logger on stderr.
func WithLogger(logger *log.Logger) Option {
	return func(o *resolveOptions) {
		o.logger = logger
	}
}

// WithWorkDir sets the directory whose sources count as project sources for
// UnprocessedModules. Defaults to the current working directory.
func WithWorkDir(dir string) Option {
	return func(o *resolveOptions) {
		o.workDir = dir
	}
}

// WithValidator replaces the schema validator. A returned
// *schema.OptionsValidationError is reported as a warning; any other error
// aborts Resolve.
func WithValidator(validate func(map[string]any) error) Option {
	return func(o *resolveOptions) {
		o.validate = validate
	}
}

// Resolve builds the project configuration from a raw config document and
// the project manifest. Either input may be nil.
func Resolve(raw rawconfig.RawConfig, pkg *manifest.Manifest, opts ...Option) (*ProjectConfig, error) {
	o := resolveOptions{validate: schema.Validate}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.New(os.Stderr, logging.DefaultOptions())
	}
	if o.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		o.workDir = wd
	}
	o.workDir = filepath.Clean(o.workDir)

	if raw == nil {
		raw = rawconfig.RawConfig{}
	}
	if pkg == nil {
		pkg = &manifest.Manifest{}
	}

	if err := o.validate(map[string]any(raw)); err != nil {
		if !schema.IsOptionsValidationError(err) {
			return nil, fmt.Errorf("validating config: %w", err)
		}
		o.logger.Warn(err.Error())
	}

	modules, err := newModuleFilter(o.workDir, raw.StringSlice("externalUnprocessedModules"))
	if err != nil {
		return nil, err
	}

	clientProjectName := raw.String("clientProjectName", "")
	cdnDir := raw.String("servers.cdn.dir", "")
	cdnURL, hasCDNURL := raw.Lookup("servers.cdn.url")

	cfg := &ProjectConfig{
		Name:  pkg.Name,
		Unpkg: pkg.Unpkg,
		Specs: Specs{
			Node:    raw.Value("specs.node", nil),
			Browser: raw.Value("specs.browser", nil),
		},
		Hooks:              raw.Map("hooks", map[string]any{}),
		HMR:                raw.Bool("hmr", true),
		LiveReload:         raw.Bool("liveReload", true),
		Exports:            raw.String("exports", ""),
		ClientProjectName:  clientProjectName,
		ClientFilesPath:    clientFilesPath(clientProjectName, cdnDir),
		IsUniversalProject: raw.Bool("universalProject", false),
		IsAngularProject:   pkg.HasDependency("angular"),
		IsReactProject:     pkg.HasDependency("react"),
		IsEsModule:         pkg.IsEsModule(),
		Servers: Servers{
			CDN: CDNServer{
				Port: raw.Int("servers.cdn.port", DefaultCDNPort),
				SSL:  raw.Bool("servers.cdn.ssl", false),
				Dir:  cdnDir,
			},
		},
		Entry:                   raw.Value("entry", nil),
		DefaultEntry:            DefaultEntry,
		SplitChunks:             raw.Bool("splitChunks", false),
		SeparateCSS:             raw.Bool("separateCss", true),
		CSSModules:              raw.Bool("cssModules", true),
		TPAStyle:                raw.Bool("tpaStyle", false),
		EnhancedTPAStyle:        raw.Bool("enhancedTpaStyle", false),
		Features:                raw.Map("features", map[string]any{}),
		Externals:               raw.Value("externals", []any{}),
		Babel:                   pkg.Babel,
		TranspileTests:          raw.Bool("transpileTests", true),
		RunIndividualTranspiler: raw.Bool("runIndividualTranspiler", true),
		JestConfig:              jestConfig(pkg),
		PetriSpecsConfig:        raw.Map("petriSpecs", map[string]any{}),
		PerformanceBudget:       raw.Value("performance", nil),
		ResolveAlias:            raw.Map("resolveAlias", map[string]any{}),
		KeepFunctionNames:       raw.Bool("keepFunctionNames", false),
		UMDNamedDefine:          raw.Bool("umdNamedDefine", true),
		modules:                 modules,
	}

	if hasCDNURL {
		cfg.Servers.CDN.url = fmt.Sprint(cdnURL)
		cfg.Servers.CDN.hasURL = true
	}

	return cfg, nil
}

func clientFilesPath(clientProjectName, cdnDir string) string {
	if clientProjectName != "" {
		dir := cdnDir
		if dir == "" {
			dir = MultipleModulesClientDist
		}
		return "node_modules/" + clientProjectName + "/" + dir
	}
	if cdnDir != "" {
		return cdnDir
	}
	return SingleModuleClientDist
}

func jestConfig(pkg *manifest.Manifest) map[string]any {
	if pkg.Jest == nil {
		return map[string]any{}
	}
	return rawconfig.CloneMap(pkg.Jest)
}
