package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dotnet-in-ue/nativebinder/internal/cli/config"
	"github.com/dotnet-in-ue/nativebinder/internal/cli/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logLevels = []string{"debug", "info", "warn", "error"}

type initOptions struct {
	dir        string
	snapshot   string
	output     string
	mainModule string
	logLevel   string
	workers    int
	force      bool
	yes        bool
}

// NewInitCommand creates the init command
func NewInitCommand(g *globalOptions) *cobra.Command {
	def := config.Default()
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter nativebinder.yaml",
		Long: `Write a starter nativebinder.yaml into the project directory.

When stdin is a terminal the values are asked for interactively, with the
flag values as defaults. Pass --yes to take the flags as they are.`,
		Example: `  # Answer a few questions
  nativebinder init

  # Non-interactive, for scripts
  nativebinder init --yes --snapshot Saved/reflection.json --main-module MyGame`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(opts.dir, config.FileName+".yaml")
			if _, err := os.Stat(path); err == nil && !opts.force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if !opts.yes && ui.IsTerminal(os.Stdin) {
				if err := opts.ask(); err != nil {
					return err
				}
			}

			cfg, err := opts.config()
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), g.noColor))
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			ui.WriteSuccess(w, "Created "+path, g.noColor)
			fmt.Fprintln(w)
			color.New(color.FgCyan).Fprintln(w, "Next:")
			fmt.Fprintln(w, "  nativebinder export")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Project directory to write the config into")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", def.Snapshot, "Reflection snapshot path")
	cmd.Flags().StringVar(&opts.output, "output", def.OutputPath, "Output directory for .umeta documents")
	cmd.Flags().StringVar(&opts.mainModule, "main-module", "", "Main game module recorded in the manifest")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", def.LogLevel, "Log level: debug, info, warn, or error")
	cmd.Flags().IntVar(&opts.workers, "workers", def.Workers, "Packages written concurrently")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the prompts")

	return cmd
}

func (o *initOptions) ask() error {
	questions := []*survey.Question{
		{
			Name:     "snapshot",
			Prompt:   &survey.Input{Message: "Reflection snapshot:", Default: o.snapshot},
			Validate: survey.Required,
		},
		{
			Name:     "output",
			Prompt:   &survey.Input{Message: "Output directory:", Default: o.output},
			Validate: survey.Required,
		},
		{
			Name: "mainModule",
			Prompt: &survey.Input{
				Message: "Main game module (optional):",
				Default: o.mainModule,
				Help:    "Recorded in manifest.json for the binding generator",
			},
		},
		{
			Name:   "workers",
			Prompt: &survey.Input{Message: "Concurrent package writes:", Default: strconv.Itoa(o.workers)},
			Validate: func(ans interface{}) error {
				if n, err := strconv.Atoi(fmt.Sprint(ans)); err != nil || n < 1 {
					return fmt.Errorf("enter a whole number of at least 1")
				}
				return nil
			},
		},
		{
			Name:   "logLevel",
			Prompt: &survey.Select{Message: "Log level:", Options: logLevels, Default: o.logLevel},
		},
	}

	answers := struct {
		Snapshot   string
		Output     string
		MainModule string
		Workers    string
		LogLevel   string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	o.snapshot = answers.Snapshot
	o.output = answers.Output
	o.mainModule = answers.MainModule
	o.logLevel = answers.LogLevel
	o.workers, _ = strconv.Atoi(answers.Workers)
	return nil
}

// config builds the file contents. Editor-only game modules are excluded by
// default.
func (o *initOptions) config() (*config.Config, error) {
	if o.workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got: %d", o.workers)
	}
	if !validLogLevel(o.logLevel) {
		return nil, fmt.Errorf("log level must be one of %v, got: %s", logLevels, o.logLevel)
	}

	cfg := config.Default()
	cfg.Snapshot = o.snapshot
	cfg.OutputPath = o.output
	cfg.MainModule = o.mainModule
	cfg.LogLevel = o.logLevel
	cfg.Workers = o.workers
	cfg.GameModules.ModulePatterns = config.Patterns{
		{Pattern: ".*Editor", Type: config.Exclude},
	}
	if err := cfg.GameModules.Compile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}
