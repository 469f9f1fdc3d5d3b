// Package binder drives one metadata generation pass the way the engine's
// header tool drives a generator plugin: modules are announced one at a
// time, classes of accepted modules are exported, and a final call writes
// the collected documents to disk.
package binder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dotnet-in-ue/nativebinder/internal/cli/config"
	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
	"github.com/dotnet-in-ue/nativebinder/internal/reflection/snapshot"
	"github.com/dotnet-in-ue/nativebinder/internal/typeinfo"
	"go.uber.org/zap"
)

const (
	// GeneratorName identifies this generator to the host.
	GeneratorName = "DotNetBindingGenerator"

	// ModulesFileName lists every accepted module, one per line.
	ModulesFileName = "Modules.txt"
)

var (
	ErrNotInitialized     = errors.New("binder not initialized")
	ErrAlreadyInitialized = errors.New("binder already initialized")
	ErrAlreadyFinished    = errors.New("export already finished")
)

// alwaysExported are the engine modules exported even though they are not
// game modules.
var alwaysExported = map[string]bool{
	"Engine":      true,
	"CoreUObject": true,
}

// Binder holds the state of one generation pass.
type Binder struct {
	settings   *config.Config
	projectDir string
	outputPath string
	logger     *zap.Logger
	now        func() time.Time

	collector   *typeinfo.Collector
	visited     map[*reflection.Class]struct{}
	moduleTypes map[string]typeinfo.ModuleType
	accepted    []string

	modules     *os.File
	initialized bool
	finished    bool
}

// Result is what a finished pass produced.
type Result struct {
	OutputPath string
	Report     *typeinfo.ExportReport
	Manifest   *Manifest
	Stats      typeinfo.Stats
}

// New creates a binder. resolver maps package names to reflected packages.
func New(settings *config.Config, projectDir string, resolver typeinfo.PackageResolver, logger *zap.Logger) *Binder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings == nil {
		settings = config.Default()
	}
	return &Binder{
		settings:   settings,
		projectDir: projectDir,
		logger:     logger,
		now:        time.Now,
		collector: typeinfo.NewCollector(
			typeinfo.WithLogger(logger.Named("collector")),
			typeinfo.WithPackageResolver(resolver),
		),
		visited:     make(map[*reflection.Class]struct{}),
		moduleTypes: make(map[string]typeinfo.ModuleType),
	}
}

// Collector exposes the collector for inspection.
func (b *Binder) Collector() *typeinfo.Collector { return b.collector }

// OutputPath is empty until Initialize succeeds.
func (b *Binder) OutputPath() string { return b.outputPath }

// Visited reports how many distinct classes were exported.
func (b *Binder) Visited() int { return len(b.visited) }

// GeneratorName returns the name the host shows for this generator.
func (b *Binder) GeneratorName() string { return GeneratorName }

// SupportsTarget accepts every build target.
func (b *Binder) SupportsTarget(string) bool { return true }

// Initialize resolves and creates the output directory and opens the module list.
func (b *Binder) Initialize() error {
	if b.initialized {
		return ErrAlreadyInitialized
	}

	out := b.settings.OutputPath
	if !filepath.IsAbs(out) {
		out = filepath.Join(b.projectDir, out)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", out, err)
	}

	f, err := os.Create(filepath.Join(out, ModulesFileName))
	if err != nil {
		return fmt.Errorf("failed to create module list: %w", err)
	}

	b.outputPath = out
	b.modules = f
	b.initialized = true
	b.logger.Debug("initialized", zap.String("output", out))
	return nil
}

// ShouldExportClassesForModule decides whether the classes of a module are
// exported. Accepted modules are recorded and their package classified.
func (b *Binder) ShouldExportClassesForModule(name string, moduleType typeinfo.ModuleType) bool {
	game := moduleType.IsGame()
	if !game && !alwaysExported[name] {
		return false
	}
	if !b.settings.ModuleSet(game).IncludesModule(name) {
		b.logger.Debug("module excluded by settings", zap.String("module", name))
		return false
	}

	b.moduleTypes[name] = moduleType
	b.accepted = append(b.accepted, name)
	if b.modules != nil {
		if _, err := fmt.Fprintln(b.modules, name); err != nil {
			b.logger.Warn("failed to record module", zap.String("module", name), zap.Error(err))
		}
	}

	if err := b.collector.SetPackageType(name, moduleType); err != nil {
		b.logger.Warn("failed to classify package", zap.String("module", name), zap.Error(err))
	}
	return true
}

// ExportClass collects cls unless the module settings exclude it.
func (b *Binder) ExportClass(cls *reflection.Class) {
	if cls == nil || b.finished {
		return
	}
	if _, seen := b.visited[cls]; seen {
		return
	}

	module := ""
	if pkg := cls.Outermost(); pkg != nil {
		module = pkg.ShortName()
	}
	game := b.moduleTypes[module].IsGame()
	if !b.settings.ModuleSet(game).IncludesType(module, cls.Name) {
		b.logger.Debug("class excluded by settings",
			zap.String("module", module),
			zap.String("class", cls.Name))
		return
	}

	b.visited[cls] = struct{}{}
	b.collector.TouchClass(cls)
}

// FinishExport writes every collected document and the manifest. It may run
// only once per binder.
func (b *Binder) FinishExport(ctx context.Context) (*Result, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if b.finished {
		return nil, ErrAlreadyFinished
	}
	b.finished = true
	defer b.closeModules()

	manifestPath := filepath.Join(b.outputPath, ManifestFileName)
	previous := b.previousRunID(manifestPath)

	report, err := b.collector.ExportAllTypes(ctx, b.outputPath, typeinfo.ExportOptions{
		Extension: b.settings.Extension,
		Workers:   b.settings.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	if main := b.settings.MainModule; main != "" {
		if _, ok := b.collector.Package(main); !ok {
			b.logger.Warn("main module was not exported", zap.String("module", main))
		}
	}

	manifest := b.buildManifest(report)
	manifest.PreviousRunID = previous
	if err := manifest.Write(manifestPath); err != nil {
		return nil, err
	}

	stats := b.collector.Stats()
	b.logger.Info("export complete",
		zap.String("run_id", manifest.RunID),
		zap.Int("modules", len(b.accepted)),
		zap.Int("classes", stats.Classes),
		zap.Int("structs", stats.Structs),
		zap.Int("enums", stats.Enums),
		zap.Int("failed", report.Count(typeinfo.StatusFailed)))

	return &Result{
		OutputPath: b.outputPath,
		Report:     report,
		Manifest:   manifest,
		Stats:      stats,
	}, nil
}

// previousRunID returns the run id of the manifest left by an earlier pass,
// or "" when there is none.
func (b *Binder) previousRunID(path string) string {
	prev, err := ReadManifest(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn("ignoring unreadable manifest", zap.String("path", path), zap.Error(err))
		}
		return ""
	}
	return prev.RunID
}

func (b *Binder) closeModules() {
	if b.modules == nil {
		return
	}
	if err := b.modules.Close(); err != nil {
		b.logger.Warn("failed to close module list", zap.Error(err))
	}
	b.modules = nil
}

// Run performs a whole pass over the given module notices.
func (b *Binder) Run(ctx context.Context, notices []snapshot.ModuleNotice) (*Result, error) {
	if err := b.Initialize(); err != nil {
		return nil, err
	}

	for _, n := range notices {
		if err := ctx.Err(); err != nil {
			b.closeModules()
			return nil, err
		}

		moduleType, err := typeinfo.ParseModuleType(n.Type)
		if err != nil {
			b.logger.Warn("unknown module type", zap.String("module", n.Name), zap.Error(err))
		}
		if !b.ShouldExportClassesForModule(n.Name, moduleType) {
			continue
		}
		for _, cls := range n.Classes {
			b.ExportClass(cls)
		}
	}

	return b.FinishExport(ctx)
}

// Export runs a fresh binder over every module of snap.
func Export(ctx context.Context, settings *config.Config, projectDir string, snap *snapshot.Snapshot, logger *zap.Logger) (*Result, error) {
	return New(settings, projectDir, snap, logger).Run(ctx, snap.Notices())
}
