package config

// Snapshot is a serializable view of a ProjectConfig with the CDN URL
// evaluated for one transport.
type Snapshot struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Unpkg any    `json:"unpkg,omitempty" yaml:"unpkg,omitempty" toml:"unpkg,omitempty"`

	Specs SpecsSnapshot `json:"specs" yaml:"specs" toml:"specs"`

	Hooks              map[string]any `json:"hooks" yaml:"hooks" toml:"hooks"`
	HMR                bool           `json:"hmr" yaml:"hmr" toml:"hmr"`
	LiveReload         bool           `json:"liveReload" yaml:"liveReload" toml:"liveReload"`
	Exports            string         `json:"exports,omitempty" yaml:"exports,omitempty" toml:"exports,omitempty"`
	ClientProjectName  string         `json:"clientProjectName,omitempty" yaml:"clientProjectName,omitempty" toml:"clientProjectName,omitempty"`
	ClientFilesPath    string         `json:"clientFilesPath" yaml:"clientFilesPath" toml:"clientFilesPath"`
	IsUniversalProject bool           `json:"isUniversalProject" yaml:"isUniversalProject" toml:"isUniversalProject"`
	IsAngularProject   bool           `json:"isAngularProject" yaml:"isAngularProject" toml:"isAngularProject"`
	IsReactProject     bool           `json:"isReactProject" yaml:"isReactProject" toml:"isReactProject"`
	IsEsModule         bool           `json:"isEsModule" yaml:"isEsModule" toml:"isEsModule"`

	Servers ServersSnapshot `json:"servers" yaml:"servers" toml:"servers"`

	Entry        any    `json:"entry,omitempty" yaml:"entry,omitempty" toml:"entry,omitempty"`
	DefaultEntry string `json:"defaultEntry" yaml:"defaultEntry" toml:"defaultEntry"`
	SplitChunks  bool   `json:"splitChunks" yaml:"splitChunks" toml:"splitChunks"`

	SeparateCSS      bool `json:"separateCss" yaml:"separateCss" toml:"separateCss"`
	CSSModules       bool `json:"cssModules" yaml:"cssModules" toml:"cssModules"`
	TPAStyle         bool `json:"tpaStyle" yaml:"tpaStyle" toml:"tpaStyle"`
	EnhancedTPAStyle bool `json:"enhancedTpaStyle" yaml:"enhancedTpaStyle" toml:"enhancedTpaStyle"`

	Features  map[string]any `json:"features" yaml:"features" toml:"features"`
	Externals any            `json:"externals" yaml:"externals" toml:"externals,omitempty"`

	Babel                   any            `json:"babel,omitempty" yaml:"babel,omitempty" toml:"babel,omitempty"`
	TranspileTests          bool           `json:"transpileTests" yaml:"transpileTests" toml:"transpileTests"`
	RunIndividualTranspiler bool           `json:"runIndividualTranspiler" yaml:"runIndividualTranspiler" toml:"runIndividualTranspiler"`
	JestConfig              map[string]any `json:"jestConfig" yaml:"jestConfig" toml:"jestConfig"`
	PetriSpecsConfig        map[string]any `json:"petriSpecsConfig" yaml:"petriSpecsConfig" toml:"petriSpecsConfig"`
	PerformanceBudget       any            `json:"performanceBudget,omitempty" yaml:"performanceBudget,omitempty" toml:"performanceBudget,omitempty"`
	ResolveAlias            map[string]any `json:"resolveAlias" yaml:"resolveAlias" toml:"resolveAlias"`
	KeepFunctionNames       bool           `json:"keepFunctionNames" yaml:"keepFunctionNames" toml:"keepFunctionNames"`
	UMDNamedDefine          bool           `json:"umdNamedDefine" yaml:"umdNamedDefine" toml:"umdNamedDefine"`

	UnprocessedModules []string `json:"unprocessedModules" yaml:"unprocessedModules" toml:"unprocessedModules"`
}

// SpecsSnapshot mirrors Specs.
type SpecsSnapshot struct {
	Node    any `json:"node,omitempty" yaml:"node,omitempty" toml:"node,omitempty"`
	Browser any `json:"browser,omitempty" yaml:"browser,omitempty" toml:"browser,omitempty"`
}

// ServersSnapshot mirrors Servers.
type ServersSnapshot struct {
	CDN CDNSnapshot `json:"cdn" yaml:"cdn" toml:"cdn"`
}

// CDNSnapshot mirrors CDNServer with the URL evaluated.
type CDNSnapshot struct {
	Port int    `json:"port" yaml:"port" toml:"port"`
	SSL  bool   `json:"ssl" yaml:"ssl" toml:"ssl"`
	Dir  string `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty"`
	URL  string `json:"url" yaml:"url" toml:"url"`
}

// Snapshot returns a serializable view of c. The CDN URL is evaluated with
// secure as the transport.
func (c *ProjectConfig) Snapshot(secure bool) Snapshot {
	return Snapshot{
		Name:  c.Name,
		Unpkg: c.Unpkg,
		Specs: SpecsSnapshot{
			Node:    c.Specs.Node,
			Browser: c.Specs.Browser,
		},
		Hooks:              c.Hooks,
		HMR:                c.HMR,
		LiveReload:         c.LiveReload,
		Exports:            c.Exports,
		ClientProjectName:  c.ClientProjectName,
		ClientFilesPath:    c.ClientFilesPath,
		IsUniversalProject: c.IsUniversalProject,
		IsAngularProject:   c.IsAngularProject,
		IsReactProject:     c.IsReactProject,
		IsEsModule:         c.IsEsModule,
		Servers: ServersSnapshot{
			CDN: CDNSnapshot{
				Port: c.Servers.CDN.Port,
				SSL:  c.Servers.CDN.SSL,
				Dir:  c.Servers.CDN.Dir,
				URL:  c.Servers.CDN.URL(secure),
			},
		},
		Entry:                   c.Entry,
		DefaultEntry:            c.DefaultEntry,
		SplitChunks:             c.SplitChunks,
		SeparateCSS:             c.SeparateCSS,
		CSSModules:              c.CSSModules,
		TPAStyle:                c.TPAStyle,
		EnhancedTPAStyle:        c.EnhancedTPAStyle,
		Features:                c.Features,
		Externals:               c.Externals,
		Babel:                   c.Babel,
		TranspileTests:          c.TranspileTests,
		RunIndividualTranspiler: c.RunIndividualTranspiler,
		JestConfig:              c.JestConfig,
		PetriSpecsConfig:        c.PetriSpecsConfig,
		PerformanceBudget:       c.PerformanceBudget,
		ResolveAlias:            c.ResolveAlias,
		KeepFunctionNames:       c.KeepFunctionNames,
		UMDNamedDefine:          c.UMDNamedDefine,
		UnprocessedModules:      c.UnprocessedModulePatterns(),
	}
}
