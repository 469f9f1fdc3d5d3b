// Package typeinfo walks a reflected type graph and builds one ordered
// document per package, class, struct and enum, ready to be written out as
// .umeta files.
//
// Packages, classes, structs and enums are deduplicated by identity: touching
// the same reflected value twice yields the same node. A node is registered
// before its document is populated, so reference cycles terminate. Properties
// and functions are value-like and collected fresh on every touch.
package typeinfo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
	"go.uber.org/zap"
)

// ScriptPrefix is prepended to a module name to form its package name.
const ScriptPrefix = "/Script/"

// ErrPackageNotFound is returned when a module name does not resolve to a package.
var ErrPackageNotFound = errors.New("package not found")

// PackageResolver finds reflected packages by their full name.
type PackageResolver interface {
	FindPackage(name string) *reflection.Package
}

// Collector owns every node produced during one run.
type Collector struct {
	packages map[*reflection.Package]*PackageInfo
	classes  map[*reflection.Class]*ClassInfo
	structs  map[*reflection.ScriptStruct]*ScriptStructInfo
	enums    map[*reflection.Enum]*EnumInfo

	resolver  PackageResolver
	logger    *zap.Logger
	finalized bool
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPackageResolver sets the resolver used by SetPackageType.
func WithPackageResolver(r PackageResolver) Option {
	return func(c *Collector) {
		c.resolver = r
	}
}

// NewCollector creates an empty collector.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		packages: make(map[*reflection.Package]*PackageInfo),
		classes:  make(map[*reflection.Class]*ClassInfo),
		structs:  make(map[*reflection.ScriptStruct]*ScriptStructInfo),
		enums:    make(map[*reflection.Enum]*EnumInfo),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TouchPackage returns the node for pkg, collecting it on first use.
func (c *Collector) TouchPackage(pkg *reflection.Package) *PackageInfo {
	if pkg == nil {
		return nil
	}
	if info, ok := c.packages[pkg]; ok {
		return info
	}
	info := newPackageInfo(pkg)
	c.packages[pkg] = info
	info.collectInfo(c)
	return info
}

// TouchClass returns the node for cls, collecting it on first use.
func (c *Collector) TouchClass(cls *reflection.Class) *ClassInfo {
	if cls == nil {
		return nil
	}
	if info, ok := c.classes[cls]; ok {
		return info
	}
	info := newClassInfo(cls)
	c.classes[cls] = info
	info.collectInfo(c)
	return info
}

// TouchStruct returns the node for s, collecting it on first use.
func (c *Collector) TouchStruct(s *reflection.ScriptStruct) *ScriptStructInfo {
	if s == nil {
		return nil
	}
	if info, ok := c.structs[s]; ok {
		return info
	}
	info := newScriptStructInfo(s)
	c.structs[s] = info
	info.collectInfo(c)
	return info
}

// TouchEnum returns the node for e, collecting it on first use.
func (c *Collector) TouchEnum(e *reflection.Enum) *EnumInfo {
	if e == nil {
		return nil
	}
	if info, ok := c.enums[e]; ok {
		return info
	}
	info := newEnumInfo(e)
	c.enums[e] = info
	info.collectInfo(c)
	return info
}

// TouchField dispatches on the field's category. It returns nil for
// anything that is not a class, script struct or enum.
func (c *Collector) TouchField(f reflection.Field) TypeNode {
	switch v := f.(type) {
	case *reflection.Class:
		if info := c.TouchClass(v); info != nil {
			return info
		}
	case *reflection.ScriptStruct:
		if info := c.TouchStruct(v); info != nil {
			return info
		}
	case *reflection.Enum:
		if info := c.TouchEnum(v); info != nil {
			return info
		}
	}
	return nil
}

// TouchProperty always builds a new node.
func (c *Collector) TouchProperty(p *reflection.Property) *PropertyInfo {
	info := newPropertyInfo(p)
	info.collectInfo(c)
	return info
}

// TouchFunction always builds a new node.
func (c *Collector) TouchFunction(fn *reflection.Function) *FunctionInfo {
	info := newFunctionInfo(fn)
	info.collectInfo(c)
	return info
}

// SetPackageType classifies the package of the named module.
func (c *Collector) SetPackageType(module string, t ModuleType) error {
	if c.resolver == nil {
		return fmt.Errorf("set package type for %s: no package resolver", module)
	}
	pkg := c.resolver.FindPackage(ScriptPrefix + module)
	if pkg == nil {
		return fmt.Errorf("set package type for %s: %w", module, ErrPackageNotFound)
	}
	c.TouchPackage(pkg).setModuleType(t)
	return nil
}

// fieldReference touches f and builds a TypeName reference to it. It returns
// nil when f cannot be represented.
func (c *Collector) fieldReference(f reflection.Field) (*Document, TypeNode) {
	node := c.TouchField(f)
	if node == nil {
		c.logger.Debug("skipping unrepresentable field",
			zap.String("field", f.FieldName()),
			zap.Stringer("category", f.Category()))
		return nil, nil
	}

	module := ""
	if pkg := f.Outermost(); pkg != nil {
		module = pkg.ShortName()
	}

	ref := newDocument()
	ref.set("FieldType", "TypeName")
	ref.set("Module", module)
	ref.set("Name", f.FieldName())
	ref.set("CppName", node.CppName())
	return ref, node
}

// Packages returns every collected package sorted by short name.
func (c *Collector) Packages() []*PackageInfo {
	out := make([]*PackageInfo, 0, len(c.packages))
	for _, p := range c.packages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if a, b := out[i].Name(), out[j].Name(); a != b {
			return a < b
		}
		return out[i].pkg.Name < out[j].pkg.Name
	})
	return out
}

// Package returns the collected package with the given short name.
func (c *Collector) Package(name string) (*PackageInfo, bool) {
	for _, p := range c.packages {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Stats counts collected nodes per category.
type Stats struct {
	Packages int
	Classes  int
	Structs  int
	Enums    int
}

// Stats returns the number of deduplicated nodes collected so far.
func (c *Collector) Stats() Stats {
	return Stats{
		Packages: len(c.packages),
		Classes:  len(c.classes),
		Structs:  len(c.structs),
		Enums:    len(c.enums),
	}
}

// Finalize runs FinalizeInfo on every package and type. Later calls do nothing.
func (c *Collector) Finalize() {
	if c.finalized {
		return
	}
	c.finalized = true
	for _, pkg := range c.Packages() {
		pkg.FinalizeInfo(c)
		for _, t := range pkg.types {
			t.FinalizeInfo(c)
		}
	}
}
