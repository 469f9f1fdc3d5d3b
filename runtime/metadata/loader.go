package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is the extension of exported documents.
const DefaultExtension = ".umeta"

// ErrUnknownKind is returned for documents whose Kind is not recognized.
var ErrUnknownKind = errors.New("unknown document kind")

// DecodeDocument parses one exported document. The result is a *Module,
// *Class, *Struct, *Enum or *Function depending on the Kind key.
func DecodeDocument(data []byte) (any, error) {
	var head struct {
		Kind string `json:"Kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var doc any
	switch head.Kind {
	case KindPackage:
		doc = &Module{}
	case KindObject, KindInterface:
		doc = &Class{}
	case KindStruct:
		doc = &Struct{}
	case KindEnum:
		doc = &Enum{}
	case KindFunction, KindDelegate:
		doc = &Function{}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, head.Kind)
	}

	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s document: %w", head.Kind, err)
	}
	wire(doc)
	return doc, nil
}

// LoadFile reads and decodes a single document.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadDir reads every document with the given extension below dir and
// indexes them. An empty ext means DefaultExtension.
func LoadDir(dir, ext string) (*Registry, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	var docs []any
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		doc, err := LoadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata from %s: %w", dir, err)
	}

	return NewRegistry(docs...)
}

// wire fills the back references a document cannot carry.
func wire(doc any) {
	switch d := doc.(type) {
	case *Class:
		wireProperties(d, d.Properties, nil)
		for _, fn := range d.Functions {
			fn.Class = d
			wireFunction(d, fn)
		}
	case *Struct:
		wireProperties(d, d.Properties, nil)
	case *Function:
		wireFunction(nil, d)
	}
}

func wireFunction(owner TypeDefinition, fn *Function) {
	if fn.Return != nil && fn.Return.IsVoid() {
		fn.Return = nil
	}
	wireProperties(owner, fn.Parameters, fn)
	if fn.Return != nil {
		wireProperties(owner, []*Property{fn.Return}, fn)
	}
}

func wireProperties(owner TypeDefinition, props []*Property, fn *Function) {
	for _, p := range props {
		if p == nil {
			continue
		}
		p.Owner = owner
		p.Function = fn
		for _, g := range p.GenericTypeParameters {
			if g != nil && g.Property != nil {
				wireProperties(owner, []*Property{g.Property}, fn)
			}
		}
	}
}
