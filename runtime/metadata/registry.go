package metadata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the number of memoized query results.
const cacheSize = 1024

var (
	ErrTypeNotFound  = errors.New("type not found")
	ErrAmbiguousType = errors.New("ambiguous type name")
	ErrDuplicateType = errors.New("duplicate type")
)

// Registry indexes a loaded metadata tree. It is immutable once built and
// safe for concurrent queries.
type Registry struct {
	modules     map[string]*Module
	types       map[string]TypeDefinition   // Module.Name -> type
	typesByName map[string][]TypeDefinition // Name -> types
	signatures  []*Function

	// Query result cache (the tree never changes after loading)
	cache *lru.Cache[string, any]

	graphOnce sync.Once
	graph     *DependencyGraph
}

// NewRegistry indexes the given documents.
func NewRegistry(docs ...any) (*Registry, error) {
	cache, err := lru.New[string, any](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	r := &Registry{
		modules:     make(map[string]*Module),
		types:       make(map[string]TypeDefinition),
		typesByName: make(map[string][]TypeDefinition),
		cache:       cache,
	}

	var defs []TypeDefinition
	for _, doc := range docs {
		switch d := doc.(type) {
		case *Module:
			if _, dup := r.modules[d.Name]; dup {
				return nil, fmt.Errorf("duplicate module %s", d.Name)
			}
			r.modules[d.Name] = d
		case TypeDefinition:
			defs = append(defs, d)
		case *Function:
			r.signatures = append(r.signatures, d)
		default:
			return nil, fmt.Errorf("unsupported document %T", doc)
		}
	}

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].QualifiedName() < defs[j].QualifiedName()
	})
	for _, def := range defs {
		if err := r.index(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// index records a type and attaches it to its module.
func (r *Registry) index(def TypeDefinition) error {
	key := def.QualifiedName()
	if _, dup := r.types[key]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateType, key)
	}
	r.types[key] = def
	r.typesByName[def.TypeName()] = append(r.typesByName[def.TypeName()], def)

	mod, ok := r.modules[def.ModuleName()]
	if !ok {
		// Type documents can outlive a removed package document.
		mod = &Module{Field: Field{Kind: KindPackage, Name: def.ModuleName()}}
		r.modules[def.ModuleName()] = mod
	}
	mod.Types = append(mod.Types, def)
	return nil
}

// Modules returns every module sorted by name.
func (r *Registry) Modules() []*Module {
	out := make([]*Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Module finds a module by short name.
func (r *Registry) Module(name string) (*Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Types returns every type sorted by qualified name.
func (r *Registry) Types() []TypeDefinition {
	out := make([]TypeDefinition, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sortTypes(out)
	return out
}

// Signatures returns standalone function documents.
func (r *Registry) Signatures() []*Function { return r.signatures }

// Type finds a type by "Module.Name" or by a name unique across modules.
func (r *Registry) Type(name string) (TypeDefinition, error) {
	if t, ok := r.types[name]; ok {
		return t, nil
	}
	switch matches := r.typesByName[name]; len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s is declared in %d modules", ErrAmbiguousType, name, len(matches))
	}
}

// Resolve finds the type a name reference points at.
func (r *Registry) Resolve(ref *TypeReference) (TypeDefinition, bool) {
	if ref == nil || ref.FieldType != FieldTypeName {
		return nil, false
	}
	t, ok := r.types[ref.QualifiedName()]
	return t, ok
}

// TypesByPattern returns the types whose name matches pattern. "*" matches
// any run of characters.
func (r *Registry) TypesByPattern(pattern string) []TypeDefinition {
	cacheKey := "pattern:" + pattern
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.([]TypeDefinition)
	}

	var result []TypeDefinition
	for _, t := range r.types {
		if matchPattern(t.TypeName(), pattern) {
			result = append(result, t)
		}
	}
	sortTypes(result)

	r.cache.Add(cacheKey, result)
	return result
}

// AllProperties returns every property declared by a struct or class, and
// every function parameter and return value, in type order.
func (r *Registry) AllProperties() []*Property {
	const cacheKey = "properties"
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.([]*Property)
	}

	var result []*Property
	for _, t := range r.Types() {
		s := structOf(t)
		if s == nil {
			continue
		}
		result = append(result, s.Properties...)
		if cls, ok := t.(*Class); ok {
			for _, fn := range cls.Functions {
				result = append(result, fn.Parameters...)
				if fn.Return != nil {
					result = append(result, fn.Return)
				}
			}
		}
	}

	r.cache.Add(cacheKey, result)
	return result
}

// ReferencesTo returns the properties whose type, or one of whose generic
// arguments, names the given type.
func (r *Registry) ReferencesTo(name string) ([]*Property, error) {
	target, err := r.Type(name)
	if err != nil {
		return nil, err
	}

	cacheKey := "refs:" + target.QualifiedName()
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.([]*Property), nil
	}

	var result []*Property
	for _, p := range r.AllProperties() {
		if referencesType(p, target.QualifiedName()) {
			result = append(result, p)
		}
	}

	r.cache.Add(cacheKey, result)
	return result, nil
}

func referencesType(p *Property, qualified string) bool {
	found := false
	walkReferences(p, func(ref *TypeReference) {
		if ref.QualifiedName() == qualified {
			found = true
		}
	})
	return found
}

// walkReferences visits the type reference of p and of every nested generic
// property.
func walkReferences(p *Property, visit func(*TypeReference)) {
	if p == nil {
		return
	}
	if p.Type != nil {
		visit(p.Type)
	}
	for _, g := range p.GenericTypeParameters {
		if g == nil {
			continue
		}
		if g.FieldType == FieldTypeProperty {
			walkReferences(g.Property, visit)
			continue
		}
		visit(g)
	}
}

// structOf returns the struct layout shared by structs and classes.
func structOf(t TypeDefinition) *Struct {
	switch v := t.(type) {
	case *Struct:
		return v
	case *Class:
		return &v.Struct
	}
	return nil
}

func sortTypes(types []TypeDefinition) {
	sort.Slice(types, func(i, j int) bool {
		return types[i].QualifiedName() < types[j].QualifiedName()
	})
}

// matchPattern matches a string against a pattern with wildcards
func matchPattern(s, pattern string) bool {
	if pattern == s || pattern == "*" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		i := strings.Index(s, part)
		if i < 0 {
			return false
		}
		s = s[i+len(part):]
	}
	return strings.HasSuffix(s, last)
}
