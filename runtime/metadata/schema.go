package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document kinds as they appear in the Kind key.
const (
	KindPackage   = "UPackage"
	KindObject    = "UObject"
	KindInterface = "UInterface"
	KindStruct    = "UStruct"
	KindEnum      = "UEnum"
	KindProperty  = "UProperty"
	KindFunction  = "UFunction"
	KindDelegate  = "UDelegate"
)

// Reference discriminators.
const (
	FieldTypeName     = "TypeName"
	FieldTypeProperty = "Property"
)

// Field carries the keys shared by every document.
type Field struct {
	Kind string            `json:"Kind"`
	Name string            `json:"Name"`
	Meta map[string]string `json:"Meta,omitempty"`
}

// Module is a package document.
type Module struct {
	Field
	LongName    string `json:"LongName"`
	Folder      string `json:"Folder"`
	File        string `json:"File"`
	PackageType string `json:"PackageType,omitempty"`

	// Types declared by the module, filled by the loader.
	Types []TypeDefinition `json:"-"`
}

// Definition carries the keys shared by type documents.
type Definition struct {
	Field
	Module string `json:"Module"`
}

func (d *Definition) definition() *Definition { return d }

// TypeKind returns the document kind.
func (d *Definition) TypeKind() string { return d.Kind }

// TypeName returns the unqualified type name.
func (d *Definition) TypeName() string { return d.Name }

// ModuleName returns the module that declares the type.
func (d *Definition) ModuleName() string { return d.Module }

// QualifiedName returns "Module.Name".
func (d *Definition) QualifiedName() string { return d.Module + "." + d.Name }

// TypeDefinition is implemented by *Struct, *Class and *Enum.
type TypeDefinition interface {
	TypeKind() string
	TypeName() string
	ModuleName() string
	QualifiedName() string
	definition() *Definition
}

// Struct is a script struct document. Classes share its layout.
type Struct struct {
	Definition
	CppName    string         `json:"CppName"`
	Size       int            `json:"Size"`
	Parent     *TypeReference `json:"Parent,omitempty"`
	Properties []*Property    `json:"Properties"`
}

// Class is a class or interface document.
type Class struct {
	Struct
	Flags      uint32      `json:"Flags"`
	FlagsText  string      `json:"FlagsText"`
	Interfaces []string    `json:"Interfaces"`
	Functions  []*Function `json:"Functions"`
}

// IsInterface reports whether the class document describes an interface.
func (c *Class) IsInterface() bool { return c.Kind == KindInterface }

// Enum is an enumeration document.
type Enum struct {
	Definition
	EnumKind     string      `json:"EnumKind"`
	CppName      string      `json:"CppName"`
	IsFlags      bool        `json:"IsFlags"`
	MaximumValue int64       `json:"MaximumValue"`
	Values       []EnumValue `json:"Values"`
}

type EnumValue struct {
	Name  string `json:"Name"`
	Value int64  `json:"Value"`
}

// Function is a function or delegate signature.
type Function struct {
	Field
	Const      bool        `json:"Const,omitempty"`
	Static     bool        `json:"Static"`
	Final      bool        `json:"Final"`
	Flags      uint32      `json:"Flags"`
	FlagsText  string      `json:"FlagsText"`
	Parameters []*Property `json:"Parameters"`
	Return     *Property   `json:"Return,omitempty"`

	// Class declaring the function, nil for standalone signatures.
	Class *Class `json:"-"`
}

// IsDelegate reports whether the function is a delegate signature.
func (f *Function) IsDelegate() bool { return f.Kind == KindDelegate }

// ReturnOrVoid returns the return property or a void marker.
func (f *Function) ReturnOrVoid() *Property {
	if f.Return != nil {
		return f.Return
	}
	return &Property{RawType: "void"}
}

// Property is a property document. It appears nested in structs, classes,
// function signatures and generic parameters.
type Property struct {
	Field
	RawType               string           `json:"RawType"`
	Offset                int              `json:"Offset"`
	Flags                 uint64           `json:"Flags"`
	FlagsText             string           `json:"FlagsText"`
	PropertyType          string           `json:"PropertyType"`
	ArrayDim              int              `json:"ArrayDim,omitempty"`
	Type                  *TypeReference   `json:"Type,omitempty"`
	GenericTypeParameters []*TypeReference `json:"GenericTypeParameters,omitempty"`
	IsUnknown             bool             `json:"IsUnknown,omitempty"`

	// Owner is the struct or class declaring the property.
	Owner TypeDefinition `json:"-"`
	// Function is set for parameters and return values.
	Function *Function `json:"-"`
}

// IsVoid reports whether p is the void return marker.
func (p *Property) IsVoid() bool {
	return p.Name == "" && p.Kind == "" && p.RawType == "void"
}

// Dim returns the number of array elements, at least one.
func (p *Property) Dim() int {
	if p.ArrayDim < 1 {
		return 1
	}
	return p.ArrayDim
}

// CleanRawType strips template arguments from generic raw types.
func (p *Property) CleanRawType() string {
	if len(p.GenericTypeParameters) == 0 {
		return p.RawType
	}
	if i := strings.Index(p.RawType, "<"); i >= 0 {
		return p.RawType[:i]
	}
	return p.RawType
}

// PrettyType renders the raw type with its generic arguments when the raw
// type does not spell them already.
func (p *Property) PrettyType() string {
	if len(p.GenericTypeParameters) == 0 || strings.Contains(p.RawType, "<") {
		return p.RawType
	}
	args := make([]string, 0, len(p.GenericTypeParameters))
	for _, g := range p.GenericTypeParameters {
		args = append(args, g.PrettyType())
	}
	return p.RawType + "<" + strings.Join(args, ",") + ">"
}

// TypeReference points at a named type or carries a nested property.
type TypeReference struct {
	FieldType string    `json:"FieldType"`
	Module    string    `json:"Module,omitempty"`
	Name      string    `json:"Name,omitempty"`
	CppName   string    `json:"CppName,omitempty"`
	Property  *Property `json:"Property,omitempty"`
}

// QualifiedName returns "Module.Name" for type name references.
func (r *TypeReference) QualifiedName() string {
	if r.FieldType != FieldTypeName {
		return ""
	}
	return r.Module + "." + r.Name
}

func (r *TypeReference) PrettyType() string {
	if r.FieldType == FieldTypeProperty && r.Property != nil {
		return r.Property.PrettyType()
	}
	return r.CppName
}

func (r *TypeReference) UnmarshalJSON(data []byte) error {
	type plain TypeReference
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.FieldType {
	case FieldTypeName:
	case FieldTypeProperty:
		if v.Property == nil {
			return fmt.Errorf("property reference without a property")
		}
	default:
		return fmt.Errorf("unknown reference field type %q", v.FieldType)
	}
	*r = TypeReference(v)
	return nil
}
