package typeinfo

import (
	"github.com/dotnet-in-ue/nativebinder/internal/flags"
	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
)

// EnumInfo describes a reflected enumeration.
type EnumInfo struct {
	TypeInfo
	enum *reflection.Enum
}

func newEnumInfo(e *reflection.Enum) *EnumInfo {
	info := &EnumInfo{TypeInfo: newTypeInfo(KindEnum, e), enum: e}
	info.self = info
	return info
}

func (e *EnumInfo) Enum() *reflection.Enum { return e.enum }

func (e *EnumInfo) collectInfo(c *Collector) {
	e.TypeInfo.collectInfo(c)

	e.doc.set("EnumKind", e.enum.CppForm.String())
	e.doc.set("CppName", e.enum.CppType)
	e.doc.set("IsFlags", e.enum.IsFlags)
	e.doc.set("MaximumValue", e.enum.MaxEnumValue())

	values := make([]any, 0, len(e.enum.Names))
	for _, n := range e.enum.Names {
		v := newDocument()
		v.set("Name", n.Name)
		v.set("Value", n.Value)
		values = append(values, v)
	}
	e.doc.set("Values", values)
}

// StructInfo is shared by script structs and classes.
type StructInfo struct {
	TypeInfo
	strct      *reflection.Struct
	properties []*PropertyInfo
	parent     TypeNode
}

func newStructInfo(kind Kind, field reflection.Field, s *reflection.Struct) StructInfo {
	return StructInfo{TypeInfo: newTypeInfo(kind, field), strct: s}
}

// Properties returns the declared properties in declaration order.
func (s *StructInfo) Properties() []*PropertyInfo { return s.properties }

// Parent returns the base type node, or nil.
func (s *StructInfo) Parent() TypeNode { return s.parent }

func (s *StructInfo) collectInfo(c *Collector) {
	s.TypeInfo.collectInfo(c)

	s.doc.set("CppName", s.strct.CPPName())
	s.doc.set("Size", s.strct.Size)

	// CppName is written before anything below can re-enter this node.
	if s.strct.Super != nil {
		if ref, node := c.fieldReference(s.strct.Super); ref != nil {
			s.parent = node
			s.doc.set("Parent", ref)
		}
	}

	props := make([]any, 0, len(s.strct.Properties))
	for _, p := range s.strct.Properties {
		info := c.TouchProperty(p)
		s.properties = append(s.properties, info)
		props = append(props, info.doc)
	}
	s.doc.set("Properties", props)
}

// ScriptStructInfo describes a reflected value type.
type ScriptStructInfo struct {
	StructInfo
	script *reflection.ScriptStruct
}

func newScriptStructInfo(s *reflection.ScriptStruct) *ScriptStructInfo {
	info := &ScriptStructInfo{StructInfo: newStructInfo(KindStruct, s, &s.Struct), script: s}
	info.self = info
	return info
}

func (s *ScriptStructInfo) ScriptStruct() *reflection.ScriptStruct { return s.script }

func (s *ScriptStructInfo) collectInfo(c *Collector) {
	s.StructInfo.collectInfo(c)
}

// ClassInfo describes a reflected class or interface.
type ClassInfo struct {
	StructInfo
	class     *reflection.Class
	functions []*FunctionInfo
}

func newClassInfo(cls *reflection.Class) *ClassInfo {
	kind := KindObject
	if cls.Flags.Has(flags.ClassInterface) {
		kind = KindInterface
	}
	info := &ClassInfo{StructInfo: newStructInfo(kind, cls, &cls.Struct), class: cls}
	info.self = info
	return info
}

func (c *ClassInfo) Class() *reflection.Class { return c.class }

// Functions returns the declared functions in declaration order.
func (c *ClassInfo) Functions() []*FunctionInfo { return c.functions }

func (c *ClassInfo) collectInfo(col *Collector) {
	c.StructInfo.collectInfo(col)

	interfaces := make([]any, 0, len(c.class.Interfaces))
	for _, iface := range c.class.Interfaces {
		interfaces = append(interfaces, iface.Name)
	}

	c.doc.set("Flags", uint32(c.class.Flags))
	c.doc.set("FlagsText", c.class.Flags.String())
	c.doc.set("Interfaces", interfaces)

	funcs := make([]any, 0, len(c.class.Functions))
	for _, fn := range c.class.Functions {
		info := col.TouchFunction(fn)
		c.functions = append(c.functions, info)
		funcs = append(funcs, info.doc)
	}
	c.doc.set("Functions", funcs)
}

// FunctionInfo describes a reflected function or delegate signature. It is
// never shared between owners.
type FunctionInfo struct {
	FieldInfo
	fn         *reflection.Function
	parameters []*PropertyInfo
	ret        *PropertyInfo
}

func newFunctionInfo(fn *reflection.Function) *FunctionInfo {
	kind := KindFunction
	if fn.Flags.Has(flags.FuncDelegate) {
		kind = KindDelegate
	}
	return &FunctionInfo{FieldInfo: newFieldInfo(kind, fn), fn: fn}
}

func (f *FunctionInfo) Function() *reflection.Function { return f.fn }

// Parameters excludes the return slot.
func (f *FunctionInfo) Parameters() []*PropertyInfo { return f.parameters }

// Return is nil for functions returning void.
func (f *FunctionInfo) Return() *PropertyInfo { return f.ret }

func (f *FunctionInfo) collectInfo(c *Collector) {
	f.FieldInfo.collectInfo(c)

	params := make([]any, 0, len(f.fn.Params))
	for _, p := range f.fn.Params {
		info := c.TouchProperty(p)
		if p.IsReturn() {
			f.ret = info
			continue
		}
		f.parameters = append(f.parameters, info)
		params = append(params, info.doc)
	}

	if f.fn.Flags.Has(flags.FuncConst) {
		f.doc.set("Const", true)
	}
	f.doc.set("Static", f.fn.Flags.Has(flags.FuncStatic))
	f.doc.set("Final", f.fn.Flags.Has(flags.FuncFinal))
	f.doc.set("Flags", uint32(f.fn.Flags))
	f.doc.set("FlagsText", f.fn.Flags.String())
	f.doc.set("Parameters", params)

	if f.ret != nil {
		f.doc.set("Return", f.ret.doc)
	} else {
		void := newDocument()
		void.set("RawType", "void")
		f.doc.set("Return", void)
	}
}
