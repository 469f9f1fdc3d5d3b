// Package snapshot loads a reflected type graph from a YAML or JSON file.
//
// A snapshot lists modules in the order the host would report them. Each
// module carries its classes, script structs and enums. Types refer to one
// another by "Module.Name" or by bare name, which is looked up in the same
// module first and then across all modules.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a snapshot file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatFromPath picks the format from the file extension. Anything other
// than .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// UnresolvedReferenceError reports a type reference that names nothing in
// the snapshot. The member carrying it is dropped.
type UnresolvedReferenceError struct {
	Owner  string
	Kind   string
	Ref    string
	Reason string
}

func (e *UnresolvedReferenceError) Error() string {
	msg := fmt.Sprintf("%s: unresolved %s reference %q", e.Owner, e.Kind, e.Ref)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// ModuleNotice is what the host reports when a module's classes become
// available.
type ModuleNotice struct {
	Name    string
	Type    string
	Package *reflection.Package
	Classes []*reflection.Class
}

// Module is one linked module of the snapshot.
type Module struct {
	Name    string
	Type    string
	Package *reflection.Package
	Classes []*reflection.Class
	Structs []*reflection.ScriptStruct
	Enums   []*reflection.Enum
}

// Snapshot is a linked reflection graph.
type Snapshot struct {
	modules  []*Module
	packages map[string]*reflection.Package
}

// Load reads and links the snapshot at path. When only references fail to
// resolve, the snapshot is returned together with the joined
// *UnresolvedReferenceError values.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f, FormatFromPath(path))
}

// Decode reads and links a snapshot from r.
func Decode(r io.Reader, format Format) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var raw rawSnapshot
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot json: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse snapshot yaml: %w", err)
		}
	}

	return link(&raw)
}

// Modules returns the linked modules in file order.
func (s *Snapshot) Modules() []*Module {
	return s.modules
}

// Module returns the module with the given name.
func (s *Snapshot) Module(name string) (*Module, bool) {
	for _, m := range s.modules {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Notices returns one ModuleNotice per module in file order.
func (s *Snapshot) Notices() []ModuleNotice {
	out := make([]ModuleNotice, 0, len(s.modules))
	for _, m := range s.modules {
		out = append(out, ModuleNotice{
			Name:    m.Name,
			Type:    m.Type,
			Package: m.Package,
			Classes: m.Classes,
		})
	}
	return out
}

// FindPackage looks a package up by its long name, e.g. "/Script/Engine".
func (s *Snapshot) FindPackage(name string) *reflection.Package {
	return s.packages[name]
}
