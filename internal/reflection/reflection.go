// Package reflection models the host engine's reflected type graph: packages,
// classes, script structs, enums, functions and their properties.
//
// The graph is owned by whoever built it (normally the snapshot loader). The
// metadata collector only reads it and uses the pointers as identities, so
// two values describing the same type must always be the same pointer.
package reflection

import (
	"sort"
	"strings"

	"github.com/dotnet-in-ue/nativebinder/internal/flags"
)

// MetaData holds the free-form key/value metadata the engine attaches to
// fields and properties (ToolTip, Category, ...).
type MetaData map[string]string

// SortedKeys returns the metadata keys in lexical order.
func (m MetaData) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package is a reflected script package such as "/Script/Engine".
type Package struct {
	Name       string
	FolderName string
	FileName   string
	Meta       MetaData
}

// ShortName returns the last path segment of the package name.
func (p *Package) ShortName() string {
	if i := strings.LastIndexByte(p.Name, '/'); i >= 0 {
		return p.Name[i+1:]
	}
	return p.Name
}

// FieldCategory is the runtime category of a reflected field.
type FieldCategory int

const (
	CategoryOther FieldCategory = iota
	CategoryClass
	CategoryScriptStruct
	CategoryEnum
	CategoryFunction
)

func (c FieldCategory) String() string {
	switch c {
	case CategoryClass:
		return "Class"
	case CategoryScriptStruct:
		return "ScriptStruct"
	case CategoryEnum:
		return "Enum"
	case CategoryFunction:
		return "Function"
	default:
		return "Other"
	}
}

// Field is any named member of a package that can be referenced by a property
// or used as a base type.
type Field interface {
	FieldName() string
	Outermost() *Package
	Category() FieldCategory
	MetaData() MetaData
}

// Struct holds what classes and script structs have in common.
type Struct struct {
	Name string

	// PrefixCPP is the native spelling prefix: F for structs, U or A for classes.
	PrefixCPP  string
	Package    *Package
	Super      Field
	Size       int
	Properties []*Property
	Meta       MetaData
}

func (s *Struct) FieldName() string { return s.Name }
func (s *Struct) Outermost() *Package { return s.Package }
func (s *Struct) MetaData() MetaData { return s.Meta }

// CPPName is the native type spelling, e.g. FVector or AActor.
func (s *Struct) CPPName() string {
	return s.PrefixCPP + s.Name
}

// ScriptStruct is a reflected value type.
type ScriptStruct struct {
	Struct
}

func (s *ScriptStruct) Category() FieldCategory { return CategoryScriptStruct }

// Class is a reflected object type. Functions holds declared functions only.
type Class struct {
	Struct
	Flags      flags.ClassFlags
	Interfaces []*Class
	Functions  []*Function
}

func (c *Class) Category() FieldCategory { return CategoryClass }

// CppForm describes how an enum is declared natively.
type CppForm int

const (
	CppFormRegular CppForm = iota
	CppFormNamespaced
	CppFormEnumClass
)

func (f CppForm) String() string {
	switch f {
	case CppFormRegular:
		return "Regular"
	case CppFormNamespaced:
		return "Namespaced"
	case CppFormEnumClass:
		return "EnumClass"
	default:
		return ""
	}
}

// EnumName is one declared enumerator.
type EnumName struct {
	Name  string
	Value int64
}

// Enum is a reflected enumeration.
type Enum struct {
	Name    string
	CppType string
	CppForm CppForm
	IsFlags bool
	Names   []EnumName
	Package *Package
	Meta    MetaData
}

func (e *Enum) FieldName() string { return e.Name }
func (e *Enum) Outermost() *Package { return e.Package }
func (e *Enum) Category() FieldCategory { return CategoryEnum }
func (e *Enum) MetaData() MetaData { return e.Meta }

// MaxEnumValue returns the largest declared value, or 0 when the enum is empty.
func (e *Enum) MaxEnumValue() int64 {
	var max int64
	for i, n := range e.Names {
		if i == 0 || n.Value > max {
			max = n.Value
		}
	}
	return max
}

// Function is a reflected function. Params holds every parameter property,
// including the one flagged as the return value.
type Function struct {
	Name    string
	Package *Package
	Flags   flags.FunctionFlags
	Params  []*Property
	Meta    MetaData
}

func (f *Function) FieldName() string { return f.Name }
func (f *Function) Outermost() *Package { return f.Package }
func (f *Function) Category() FieldCategory { return CategoryFunction }
func (f *Function) MetaData() MetaData { return f.Meta }
