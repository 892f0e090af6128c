// Package cmd implements the CLI command structure for yoshi-config.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/yoshi-config/internal/config"
	"github.com/nibzard/yoshi-config/internal/logging"
	"github.com/nibzard/yoshi-config/internal/schema"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrInvalidConfig is returned by the validate command when the config does
// not match the schema.
var ErrInvalidConfig = errors.New("configuration does not match the schema")

// globals are the options shared by every subcommand.
type globals struct {
	workDir string
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
}

// Run executes the yoshi-config CLI.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdout, os.Stderr)
}

// RunWithIO executes the CLI writing command output to stdout and logs to
// stderr.
func RunWithIO(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("yoshi-config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")
	workDir := fs.String("C", "", "Project directory (default: current directory)")
	logLevel := fs.String("log-level", "info", "Log level (debug|info|warn|error)")
	logFormat := fs.String("log-format", "text", "Log format (text|json|logfmt)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	formatter, err := logging.ParseFormatter(*logFormat)
	if err != nil {
		return err
	}
	logOpts := logging.DefaultOptions()
	logOpts.Level = level
	logOpts.Formatter = formatter

	g := globals{
		workDir: *workDir,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logging.New(stderr, logOpts),
	}

	// If no args or first arg is a flag, use "print" as default
	subcommand := "print"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "print":
		return printCommand(g, remainingArgs)
	case "validate":
		return validateCommand(g, remainingArgs)
	case "watch":
		return watchCommand(ctx, g, remainingArgs)
	case "hook":
		return hookCommand(ctx, g, remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// outputFlags registers the flags shared by print and watch.
func outputFlags(fs *flag.FlagSet) (format *string, secure *bool) {
	format = fs.String("format", "json", "Output format (json|yaml|toml)")
	secure = fs.Bool("secure", false, "Evaluate the CDN URL for https (default: the configured servers.cdn.ssl)")
	return format, secure
}

// secureSet reports whether -secure was passed explicitly.
func secureSet(fs *flag.FlagSet) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "secure" {
			set = true
		}
	})
	return set
}

func (g globals) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		WorkDir: g.workDir,
		Logger:  g.logger,
	}
}

// printCommand resolves the configuration and prints it.
func printCommand(g globals, args []string) error {
	fs := flag.NewFlagSet("yoshi-config print", flag.ContinueOnError)
	fs.SetOutput(g.stderr)
	format, secure := outputFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	cfg, sources, err := config.Load(g.loadOptions())
	if err != nil {
		return err
	}
	logSources(g.logger, sources)

	useSecure := cfg.Servers.CDN.SSL
	if secureSet(fs) {
		useSecure = *secure
	}
	return writeSnapshot(g.stdout, cfg.Snapshot(useSecure), *format)
}

// validateCommand checks the raw config against the schema without
// resolving it.
func validateCommand(g globals, args []string) error {
	fs := flag.NewFlagSet("yoshi-config validate", flag.ContinueOnError)
	fs.SetOutput(g.stderr)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	in, err := config.LoadInputs(g.loadOptions())
	if err != nil {
		return err
	}
	logSources(g.logger, in.Sources)

	if err := schema.Validate(in.Raw); err != nil {
		if schema.IsOptionsValidationError(err) {
			fmt.Fprintln(g.stdout, err.Error())
			return ErrInvalidConfig
		}
		return err
	}

	source := in.Sources.ConfigPath
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(g.stdout, "Configuration is valid (%s)\n", source)
	return nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "yoshi-config %s\n", Version)
	return nil
}

func logSources(logger *log.Logger, sources *config.Sources) {
	if sources == nil {
		return
	}
	logger.Debug("config sources",
		"manifest", sources.ManifestPath,
		"config", sources.ConfigPath,
		"env", sources.EnvOverrides,
	)
}

// writeSnapshot encodes snap in the requested format.
func writeSnapshot(w io.Writer, snap config.Snapshot, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(snap)
	}
	return fmt.Errorf("unknown format %q (want json, yaml or toml)", format)
}

// printUsage prints usage information.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "yoshi-config - resolve a project's build configuration")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  yoshi-config [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  print     Print the resolved configuration (default command)")
	fmt.Fprintln(w, "  validate  Check the raw configuration against the schema")
	fmt.Fprintln(w, "  watch     Print the resolved configuration whenever it changes")
	fmt.Fprintln(w, "  hook      Run a configured hook, or list hooks when no name is given")
	fmt.Fprintln(w, "  version   Show version information")
	fmt.Fprintln(w, "  help      Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print/Watch Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (json|yaml|toml) (default \"json\")")
	fmt.Fprintln(w, "  -secure")
	fmt.Fprintln(w, "        Evaluate the CDN URL for https (default: the configured servers.cdn.ssl)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  YOSHI_CDN_PORT, YOSHI_CDN_URL, YOSHI_CDN_SSL, YOSHI_CDN_DIR,")
	fmt.Fprintln(w, "  YOSHI_HMR, YOSHI_CLIENT_PROJECT_NAME override the matching config keys")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Schema mismatches are logged at warn level as \"Warning: ...\" on stderr.")
	fmt.Fprintln(w, "With -log-level error they are hidden; -log-format json or logfmt")
	fmt.Fprintln(w, "reports them as a level=warn record instead.")
}
