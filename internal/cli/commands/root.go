package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dotnet-in-ue/nativebinder/internal/cli/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags of the root command.
type globalOptions struct {
	configFile string
	verbose    bool
	noColor    bool
}

// project is a loaded configuration and the directory relative paths in it
// resolve against.
type project struct {
	cfg        *config.Config
	dir        string
	configFile string
}

// loadProject reads the configuration named by --config, or the one found by
// walking up from the working directory. Without any file the defaults apply
// to the working directory.
func (o *globalOptions) loadProject() (*project, error) {
	file := o.configFile
	var dir string
	if file != "" {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		file = abs
		dir = filepath.Dir(abs)
	} else if root, err := config.GetProjectRoot(); err == nil {
		dir = root
		file = configFileIn(root)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}
	return &project{cfg: cfg, dir: dir, configFile: file}, nil
}

// resolve makes path absolute against the project directory.
func (p *project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.dir, path)
}

func configFileIn(dir string) string {
	for _, ext := range []string{".yml", ".yaml"} {
		path := filepath.Join(dir, config.FileName+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// newLogger builds the development logger for --verbose and a console
// production logger at level otherwise.
func (o *globalOptions) newLogger(level string) (*zap.Logger, error) {
	if o.verbose {
		return zap.NewDevelopment()
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "nativebinder",
		Short: "Export Unreal reflection metadata for .NET bindings",
		Long: `nativebinder - Unreal reflection metadata exporter

nativebinder walks a snapshot of the engine's reflection graph, collects every
package, class, struct, enum, function and property reachable from the
exported modules, and writes one .umeta JSON document per type. The
documents feed the managed binding generator.

Features:
  • Deduplicated type graph with cross-package references
  • Per-module include/exclude patterns
  • Content-hashed writes and a run manifest
  • Registry queries and dependency graphs over exported trees`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Config file (default: nativebinder.yaml in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewExportCommand(opts))
	rootCmd.AddCommand(NewIntrospectCommand(opts))
	rootCmd.AddCommand(NewFlagsCommand(opts))
	rootCmd.AddCommand(NewWatchCommand(opts))
	rootCmd.AddCommand(NewInitCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the nativebinder version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			w := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(w, "nativebinder version: ")
			fmt.Fprintln(w, Version)

			titleColor.Fprint(w, "Git commit: ")
			fmt.Fprintln(w, GitCommit)

			titleColor.Fprint(w, "Build date: ")
			fmt.Fprintln(w, BuildDate)

			titleColor.Fprint(w, "Go version: ")
			fmt.Fprintln(w, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
