package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/dotnet-in-ue/nativebinder/internal/cli/ui"
	"github.com/dotnet-in-ue/nativebinder/internal/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewWatchCommand creates the watch command
func NewWatchCommand(g *globalOptions) *cobra.Command {
	var (
		flags    = &exportFlags{}
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Export, then re-export whenever the snapshot changes",
		Long: `Export the reflection snapshot, then keep watching it and the config file
and export again after every change.

Failed exports are reported and watching continues. Changing the snapshot
path in the config takes effect after a restart.`,
		Example: `  # Watch the configured snapshot
  nativebinder watch

  # Wait longer for the editor to finish writing the snapshot
  nativebinder watch --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.loadProject()
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), g.noColor))
				return err
			}
			if err := flags.apply(cmd, p); err != nil {
				return err
			}

			logger, err := g.newLogger(p.cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			snapPath := p.resolve(p.cfg.Snapshot)
			files := []string{snapPath}
			if p.configFile != "" {
				files = append(files, p.configFile)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			pass := func(ctx context.Context, changed []string) error {
				if p.configFile != "" && slices.Contains(changed, p.configFile) {
					reloaded, err := g.loadProject()
					if err != nil {
						fmt.Fprint(errOut, ui.ConfigError(err.Error(), g.noColor))
						return err
					}
					if err := flags.apply(cmd, reloaded); err != nil {
						return err
					}
					if reloaded.resolve(reloaded.cfg.Snapshot) != snapPath {
						logger.Warn("snapshot path changed, restart watch to follow it",
							zap.String("watching", snapPath))
						reloaded.cfg.Snapshot = snapPath
					}
					p = reloaded
				}

				start := time.Now()
				res, err := runExport(ctx, p, logger, errOut, g.noColor)
				if err != nil {
					color.New(color.FgRed).Fprintf(errOut, "✗ export failed: %v\n", err)
					return err
				}
				ui.WriteSuccess(out, fmt.Sprintf("exported %d documents in %s (%d failed)",
					len(res.Report.Records), time.Since(start).Round(time.Millisecond), len(res.Report.Failed())), g.noColor)
				return nil
			}

			fmt.Fprintln(out, color.CyanString("Watching %s (Ctrl+C to stop)", snapPath))
			return watch.Loop(ctx, files, pass, logger, watch.WithDebounce(debounce))
		},
	}

	cmd.Flags().StringVarP(&flags.snapshot, "snapshot", "s", "", "Reflection snapshot to watch (overrides config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 1, "Packages written concurrently (overrides config)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "How long to wait for writes to settle")

	return cmd
}
