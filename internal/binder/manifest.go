package binder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dotnet-in-ue/nativebinder/internal/typeinfo"
	"github.com/google/uuid"
)

// ManifestFileName is written next to the exported documents.
const ManifestFileName = "manifest.json"

// Manifest records what one export run produced.
type Manifest struct {
	RunID         string          `json:"run_id"`
	PreviousRunID string          `json:"previous_run_id,omitempty"`
	Generator     string          `json:"generator"`
	GeneratedAt   time.Time       `json:"generated_at"`
	MainModule    string          `json:"main_module,omitempty"`
	Modules       []string        `json:"modules"`
	Documents     []ManifestEntry `json:"documents"`
}

// ManifestEntry describes one exported document. Path is relative to the
// output directory and uses forward slashes.
type ManifestEntry struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Module string `json:"module"`
	Name   string `json:"name"`
	Hash   string `json:"hash,omitempty"`
	Status string `json:"status"`
}

func (b *Binder) buildManifest(report *typeinfo.ExportReport) *Manifest {
	m := &Manifest{
		RunID:       uuid.NewString(),
		Generator:   GeneratorName,
		GeneratedAt: b.now().UTC(),
		MainModule:  b.settings.MainModule,
		Modules:     append([]string{}, b.accepted...),
		Documents:   make([]ManifestEntry, 0, len(report.Records)),
	}
	for _, rec := range report.Records {
		rel, err := filepath.Rel(b.outputPath, rec.Path)
		if err != nil {
			rel = rec.Path
		}
		m.Documents = append(m.Documents, ManifestEntry{
			Path:   filepath.ToSlash(rel),
			Kind:   rec.Kind.String(),
			Module: rec.Module,
			Name:   rec.Name,
			Hash:   rec.Hash,
			Status: rec.Status.String(),
		})
	}
	return m
}

// Write stores the manifest as indented JSON.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest to %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by a previous run.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
