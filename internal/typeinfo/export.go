package typeinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultExtension is appended to every exported document name.
const DefaultExtension = ".umeta"

// ExportOptions tunes ExportAllTypes.
type ExportOptions struct {
	// Extension defaults to DefaultExtension.
	Extension string

	// Workers bounds how many packages are written concurrently. Values
	// below 1 mean one.
	Workers int
}

// WriteStatus is the outcome of writing one document.
type WriteStatus int

const (
	StatusWritten WriteStatus = iota
	StatusUnchanged
	StatusFailed
)

func (s WriteStatus) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "failed"
	}
}

// DocumentRecord describes one exported file.
type DocumentRecord struct {
	Path   string
	Kind   Kind
	Module string
	Name   string
	Hash   string
	Status WriteStatus
	Err    error
}

// ExportReport lists every document ExportAllTypes attempted, sorted by path.
type ExportReport struct {
	Records []DocumentRecord
}

// Count returns how many records have the given status.
func (r *ExportReport) Count(status WriteStatus) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the records that could not be written.
func (r *ExportReport) Failed() []DocumentRecord {
	var out []DocumentRecord
	for _, rec := range r.Records {
		if rec.Status == StatusFailed {
			out = append(out, rec)
		}
	}
	return out
}

// ExportAllTypes writes <dest>/<Package>.umeta for every collected package and
// <dest>/<Package>/<Type>.umeta for each of its types. Files whose content
// would not change are left untouched. Individual write failures are logged
// and recorded in the report; only a missing destination or a cancelled
// context is returned as an error.
func (c *Collector) ExportAllTypes(ctx context.Context, dest string, opts ExportOptions) (*ExportReport, error) {
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", dest, err)
	}

	c.Finalize()

	pkgs := c.Packages()
	results := make([][]DocumentRecord, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.exportPackage(gctx, dest, pkg, ext)
			return nil
		})
	}
	err := g.Wait()

	report := &ExportReport{}
	for _, recs := range results {
		report.Records = append(report.Records, recs...)
	}
	sort.Slice(report.Records, func(i, j int) bool {
		return report.Records[i].Path < report.Records[j].Path
	})

	c.logger.Info("export finished",
		zap.String("dest", dest),
		zap.Int("packages", len(pkgs)),
		zap.Int("written", report.Count(StatusWritten)),
		zap.Int("unchanged", report.Count(StatusUnchanged)),
		zap.Int("failed", report.Count(StatusFailed)))

	return report, err
}

func (c *Collector) exportPackage(ctx context.Context, dest string, pkg *PackageInfo, ext string) []DocumentRecord {
	name := pkg.Name()
	records := make([]DocumentRecord, 0, len(pkg.types)+1)
	records = append(records, c.writeNode(pkg, name, filepath.Join(dest, name+ext)))

	dir := filepath.Join(dest, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.logger.Error("failed to create package directory", zap.String("dir", dir), zap.Error(err))
		for _, t := range pkg.types {
			records = append(records, DocumentRecord{
				Path:   filepath.Join(dir, t.Name()+ext),
				Kind:   t.Kind(),
				Module: name,
				Name:   t.Name(),
				Status: StatusFailed,
				Err:    err,
			})
		}
		return records
	}

	for _, t := range pkg.types {
		if ctx.Err() != nil {
			break
		}
		records = append(records, c.writeNode(t, name, filepath.Join(dir, t.Name()+ext)))
	}
	return records
}

func (c *Collector) writeNode(node Node, module, path string) DocumentRecord {
	rec := DocumentRecord{
		Path:   path,
		Kind:   node.Kind(),
		Module: module,
		Name:   node.Name(),
	}

	hash, written, err := WriteToFile(node.Document(), path)
	rec.Hash = hash
	switch {
	case err != nil:
		c.logger.Error("failed to write document", zap.String("path", path), zap.Error(err))
		rec.Status, rec.Err = StatusFailed, err
	case written:
		rec.Status = StatusWritten
	default:
		rec.Status = StatusUnchanged
	}
	return rec
}
