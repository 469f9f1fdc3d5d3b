package typeinfo

import (
	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
	"go.uber.org/zap"
)

// GenericArgument is one entry of a property's GenericTypeParameters: either
// a type reference or a nested property description.
type GenericArgument struct {
	Type     TypeNode
	Property *PropertyInfo
}

// PropertyInfo describes a struct member or function parameter. It is never
// shared between owners.
type PropertyInfo struct {
	metaInfo
	prop     *reflection.Property
	typ      TypeNode
	generics []GenericArgument
	genDocs  []any
}

func newPropertyInfo(p *reflection.Property) *PropertyInfo {
	return &PropertyInfo{metaInfo: newMetaInfo(KindProperty), prop: p}
}

func (p *PropertyInfo) Name() string { return p.prop.Name }
func (p *PropertyInfo) Property() *reflection.Property { return p.prop }

// Type returns the direct type reference, or nil.
func (p *PropertyInfo) Type() TypeNode { return p.typ }

// GenericArguments returns the generic type parameters in insertion order.
func (p *PropertyInfo) GenericArguments() []GenericArgument { return p.generics }

func (p *PropertyInfo) collectInfo(c *Collector) {
	p.metaInfo.collectInfo(c)

	prop := p.prop
	p.doc.set("Name", prop.Name)
	p.doc.set("RawType", prop.CPPType)
	p.setMeta(prop.Meta)
	p.doc.set("Offset", prop.Offset)
	p.doc.set("Flags", uint64(prop.Flags))
	p.doc.set("FlagsText", prop.Flags.String())
	p.doc.set("PropertyType", prop.Class)
	if prop.ArrayDim > 1 {
		p.doc.set("ArrayDim", prop.ArrayDim)
	}

	switch prop.Kind {
	case reflection.KindStruct:
		p.setType(c, structField(prop.Struct))
	case reflection.KindClass:
		p.addGenericType(c, classField(prop.MetaClass))
		p.setType(c, classField(prop.PropertyClass))
	case reflection.KindObject:
		p.setType(c, classField(prop.PropertyClass))
	case reflection.KindWeakObject, reflection.KindSoftObject, reflection.KindLazyObject:
		p.addGenericType(c, classField(prop.PropertyClass))
	case reflection.KindNumeric:
		if prop.Enum != nil {
			p.addGenericType(c, prop.Enum)
		}
	case reflection.KindEnum:
		p.setType(c, enumField(prop.Enum))
	case reflection.KindArray, reflection.KindSet:
		p.addGenericProperty(c, prop.Inner)
	case reflection.KindMap:
		p.addGenericProperty(c, prop.Key)
		p.addGenericProperty(c, prop.Value)
	case reflection.KindBool, reflection.KindName, reflection.KindStr, reflection.KindText,
		reflection.KindMulticastDelegate, reflection.KindDelegate:
	default:
		p.doc.set("IsUnknown", true)
	}
}

func (p *PropertyInfo) setType(c *Collector, f reflection.Field) {
	if f == nil {
		c.logger.Debug("property type missing", zap.String("property", p.prop.Name))
		return
	}
	ref, node := c.fieldReference(f)
	if ref == nil {
		return
	}
	p.typ = node
	p.doc.set("Type", ref)
}

func (p *PropertyInfo) addGenericType(c *Collector, f reflection.Field) {
	if f == nil {
		c.logger.Debug("generic argument missing", zap.String("property", p.prop.Name))
		return
	}
	ref, node := c.fieldReference(f)
	if ref == nil {
		return
	}
	p.addGeneric(GenericArgument{Type: node}, ref)
}

func (p *PropertyInfo) addGenericProperty(c *Collector, inner *reflection.Property) {
	if inner == nil {
		c.logger.Debug("generic argument missing", zap.String("property", p.prop.Name))
		return
	}
	info := c.TouchProperty(inner)
	ref := newDocument()
	ref.set("FieldType", "Property")
	ref.set("Property", info.doc)
	p.addGeneric(GenericArgument{Property: info}, ref)
}

func (p *PropertyInfo) addGeneric(arg GenericArgument, ref *Document) {
	p.generics = append(p.generics, arg)
	p.genDocs = append(p.genDocs, ref)
	p.doc.set("GenericTypeParameters", p.genDocs)
}

// The helpers below keep typed nil pointers from turning into non-nil Field
// interface values.

func structField(s *reflection.ScriptStruct) reflection.Field {
	if s == nil {
		return nil
	}
	return s
}

func classField(cls *reflection.Class) reflection.Field {
	if cls == nil {
		return nil
	}
	return cls
}

func enumField(e *reflection.Enum) reflection.Field {
	if e == nil {
		return nil
	}
	return e
}
