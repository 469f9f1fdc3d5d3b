package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dotnet-in-ue/nativebinder/internal/binder"
	"github.com/dotnet-in-ue/nativebinder/internal/cli/ui"
	"github.com/dotnet-in-ue/nativebinder/internal/reflection/snapshot"
	"github.com/dotnet-in-ue/nativebinder/internal/typeinfo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type exportFlags struct {
	snapshot string
	output   string
	workers  int
}

// apply copies the flags the user set over the configuration.
func (f *exportFlags) apply(cmd *cobra.Command, p *project) error {
	if cmd.Flags().Changed("snapshot") {
		p.cfg.Snapshot = f.snapshot
	}
	if cmd.Flags().Changed("output") {
		p.cfg.OutputPath = f.output
	}
	if cmd.Flags().Changed("workers") {
		if f.workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got: %d", f.workers)
		}
		p.cfg.Workers = f.workers
	}
	return nil
}

// NewExportCommand creates the export command
func NewExportCommand(g *globalOptions) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export type metadata from a reflection snapshot",
		Long: `Export type metadata from a reflection snapshot.

The export command loads the reflection snapshot named in the configuration,
walks the classes of every game module plus Engine and CoreUObject, and writes
one .umeta document per reachable package and type. A Modules.txt list and a
manifest.json describing the run are written next to the documents.

Documents whose content did not change are left untouched, so repeated
exports only rewrite what moved.`,
		Example: `  # Export using nativebinder.yaml
  nativebinder export

  # Export another snapshot into a scratch directory
  nativebinder export --snapshot dumps/editor.json --output /tmp/meta

  # Write packages concurrently
  nativebinder export --workers 4`,
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

			errOut := cmd.ErrOrStderr()
			var res *binder.Result
			export := func() error {
				res, err = runExport(cmd.Context(), p, logger, errOut, g.noColor)
				return err
			}
			if ui.IsTerminal(errOut) && !g.verbose {
				err = ui.WithSpinner(errOut, "Exporting metadata", g.noColor, export)
			} else {
				err = export()
			}
			if err != nil {
				return err
			}

			return printExportSummary(cmd.OutOrStdout(), res, g.noColor)
		},
	}

	cmd.Flags().StringVarP(&flags.snapshot, "snapshot", "s", "", "Reflection snapshot to export (overrides config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 1, "Packages written concurrently (overrides config)")

	return cmd
}

// runExport loads the project's snapshot and runs one binder pass over it.
// References that fail to resolve are reported as a warning and the rest of
// the snapshot is still exported.
func runExport(ctx context.Context, p *project, logger *zap.Logger, errOut io.Writer, noColor bool) (*binder.Result, error) {
	path := p.resolve(p.cfg.Snapshot)
	snap, err := snapshot.Load(path)
	if err != nil {
		if snap == nil {
			fmt.Fprint(errOut, ui.SnapshotError(path, err, noColor))
			return nil, err
		}
		logger.Warn("snapshot has unresolved references", zap.String("snapshot", path), zap.Error(err))
		var unresolved *snapshot.UnresolvedReferenceError
		if errors.As(err, &unresolved) {
			fmt.Fprint(errOut, ui.Warning(fmt.Sprintf("%s: dropped members with unresolved references, first: %s", path, unresolved.Error()), noColor))
		}
	}

	return binder.Export(ctx, p.cfg, p.dir, snap, logger)
}

// printExportSummary renders the run totals, the documents per module and
// any failed writes. Failed writes make the command fail.
func printExportSummary(w io.Writer, res *binder.Result, noColor bool) error {
	report := res.Report

	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Output", res.OutputPath)
	kv.AddRow("Run", res.Manifest.RunID)
	previous := res.Manifest.PreviousRunID
	if previous == "" {
		previous = "-"
	}
	kv.AddRow("Previous", previous)
	kv.AddRow("Modules", strconv.Itoa(len(res.Manifest.Modules)))
	kv.AddRow("Packages", strconv.Itoa(res.Stats.Packages))
	kv.AddRow("Classes", strconv.Itoa(res.Stats.Classes))
	kv.AddRow("Structs", strconv.Itoa(res.Stats.Structs))
	kv.AddRow("Enums", strconv.Itoa(res.Stats.Enums))
	kv.AddRow("Written", strconv.Itoa(report.Count(typeinfo.StatusWritten)))
	kv.AddRow("Unchanged", strconv.Itoa(report.Count(typeinfo.StatusUnchanged)))
	kv.AddRow("Failed", strconv.Itoa(report.Count(typeinfo.StatusFailed)))
	kv.Render()

	perModule := make(map[string]int)
	for _, rec := range report.Records {
		perModule[rec.Module]++
	}
	modules := make([]string, 0, len(perModule))
	for m := range perModule {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	if len(modules) > 0 {
		fmt.Fprintln(w)
		table := ui.NewTable(w, []string{"Module", "Documents"}, &ui.TableOptions{NoColor: noColor, RightAlign: []int{1}})
		for _, m := range modules {
			table.AddRow(m, strconv.Itoa(perModule[m]))
		}
		table.Render()
	}

	failed := report.Failed()
	if len(failed) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	section := ui.NewSection(w, "Failed documents", noColor)
	for _, rec := range failed {
		section.AddLine("%s: %v", rec.Path, rec.Err)
	}
	section.Render()
	return fmt.Errorf("%d documents failed to write", len(failed))
}
