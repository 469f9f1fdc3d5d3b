package typeinfo

import (
	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
	"go.uber.org/zap"
)

// Node is one collected element of the type graph together with the document
// describing it.
type Node interface {
	Kind() Kind
	Name() string
	Document() *Document

	// FinalizeInfo runs once after collection completes.
	FinalizeInfo(c *Collector)

	collectInfo(c *Collector)
}

// TypeNode is a node that belongs to a package and gets its own export file.
type TypeNode interface {
	Node
	PackageInfo() *PackageInfo
	CppName() string
	Field() reflection.Field
}

type metaInfo struct {
	kind Kind
	doc  *Document
}

func newMetaInfo(kind Kind) metaInfo {
	return metaInfo{kind: kind, doc: newDocument()}
}

func (m *metaInfo) Kind() Kind { return m.kind }
func (m *metaInfo) Document() *Document { return m.doc }
func (m *metaInfo) FinalizeInfo(*Collector) {}

func (m *metaInfo) collectInfo(*Collector) {
	if m.kind != KindNone {
		m.doc.set("Kind", m.kind.String())
	}
}

// setMeta writes the Meta object when there is any metadata.
func (m *metaInfo) setMeta(meta reflection.MetaData) {
	if len(meta) == 0 {
		return
	}
	obj := newDocument()
	for _, k := range meta.SortedKeys() {
		obj.set(k, meta[k])
	}
	m.doc.set("Meta", obj)
}

// PackageInfo describes a script package and owns the list of types exported
// under it.
type PackageInfo struct {
	metaInfo
	pkg        *reflection.Package
	moduleType ModuleType
	types      []TypeNode
}

func newPackageInfo(pkg *reflection.Package) *PackageInfo {
	return &PackageInfo{
		metaInfo:   newMetaInfo(KindPackage),
		pkg:        pkg,
		moduleType: ModuleMax,
	}
}

// Name is the package's short name, which is also its module name.
func (p *PackageInfo) Name() string { return p.pkg.ShortName() }

func (p *PackageInfo) Package() *reflection.Package { return p.pkg }
func (p *PackageInfo) ModuleType() ModuleType { return p.moduleType }

// Types returns the package's types in the order they were discovered.
func (p *PackageInfo) Types() []TypeNode {
	out := make([]TypeNode, len(p.types))
	copy(out, p.types)
	return out
}

func (p *PackageInfo) collectInfo(c *Collector) {
	p.metaInfo.collectInfo(c)
	p.doc.set("LongName", p.pkg.Name)
	p.doc.set("Name", p.pkg.ShortName())
	p.doc.set("Folder", p.pkg.FolderName)
	p.doc.set("File", p.pkg.FileName)
}

func (p *PackageInfo) setModuleType(t ModuleType) {
	p.moduleType = t
	p.doc.set("PackageType", t.String())
}

func (p *PackageInfo) addType(t TypeNode) {
	p.types = append(p.types, t)
}

// FieldInfo is the common part of every named field.
type FieldInfo struct {
	metaInfo
	field reflection.Field
}

func newFieldInfo(kind Kind, field reflection.Field) FieldInfo {
	return FieldInfo{metaInfo: newMetaInfo(kind), field: field}
}

func (f *FieldInfo) Name() string { return f.field.FieldName() }
func (f *FieldInfo) Field() reflection.Field { return f.field }

func (f *FieldInfo) collectInfo(c *Collector) {
	f.metaInfo.collectInfo(c)
	f.doc.set("Name", f.field.FieldName())
	f.setMeta(f.field.MetaData())
}

// TypeInfo is a field that lives directly in a package. Collecting it
// registers the node with its package.
type TypeInfo struct {
	FieldInfo
	self TypeNode
	pkg  *PackageInfo
}

func newTypeInfo(kind Kind, field reflection.Field) TypeInfo {
	return TypeInfo{FieldInfo: newFieldInfo(kind, field)}
}

// PackageInfo returns the owning package, or nil before collection.
func (t *TypeInfo) PackageInfo() *PackageInfo { return t.pkg }

// CppName returns the native spelling recorded during collection.
func (t *TypeInfo) CppName() string { return t.doc.GetString("CppName") }

func (t *TypeInfo) collectInfo(c *Collector) {
	t.FieldInfo.collectInfo(c)

	pkg := c.TouchPackage(t.field.Outermost())
	if pkg == nil {
		c.logger.Warn("type has no package", zap.String("type", t.field.FieldName()))
		return
	}
	t.pkg = pkg
	pkg.addType(t.self)
	t.doc.set("Module", pkg.Name())
}
