package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dotnet-in-ue/nativebinder/internal/flags"
	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
)

const scriptPrefix = "/Script/"

// linker turns the raw shape into a pointer graph in two passes: first every
// identity is created, then references between them are filled in.
type linker struct {
	snap *Snapshot

	classes map[string]map[string]*reflection.Class
	structs map[string]map[string]*reflection.ScriptStruct
	enums   map[string]map[string]*reflection.Enum

	problems []error
}

func link(raw *rawSnapshot) (*Snapshot, error) {
	l := &linker{
		snap:    &Snapshot{packages: make(map[string]*reflection.Package)},
		classes: make(map[string]map[string]*reflection.Class),
		structs: make(map[string]map[string]*reflection.ScriptStruct),
		enums:   make(map[string]map[string]*reflection.Enum),
	}

	if err := l.declare(raw); err != nil {
		return nil, err
	}
	for i := range raw.Modules {
		l.fill(&raw.Modules[i], l.snap.modules[i])
	}

	return l.snap, errors.Join(l.problems...)
}

func (l *linker) declare(raw *rawSnapshot) error {
	for _, rm := range raw.Modules {
		if rm.Name == "" {
			return fmt.Errorf("module without a name")
		}
		if _, dup := l.classes[rm.Name]; dup {
			return fmt.Errorf("duplicate module %q", rm.Name)
		}

		folder := rm.Folder
		if folder == "" {
			folder = strings.TrimSuffix(scriptPrefix, "/")
		}
		pkg := &reflection.Package{
			Name:       scriptPrefix + rm.Name,
			FolderName: folder,
			FileName:   rm.File,
			Meta:       reflection.MetaData(rm.Meta),
		}
		l.snap.packages[pkg.Name] = pkg

		mod := &Module{Name: rm.Name, Type: rm.Type, Package: pkg}
		l.snap.modules = append(l.snap.modules, mod)
		l.classes[rm.Name] = make(map[string]*reflection.Class)
		l.structs[rm.Name] = make(map[string]*reflection.ScriptStruct)
		l.enums[rm.Name] = make(map[string]*reflection.Enum)

		for _, rc := range rm.Classes {
			if err := checkName(rm.Name, "class", rc.Name, l.classes[rm.Name]); err != nil {
				return err
			}
			if uint64(rc.Flags) > uint64(^uint32(0)) {
				return fmt.Errorf("%s.%s: class flags %#x overflow 32 bits", rm.Name, rc.Name, uint64(rc.Flags))
			}
			cls := &reflection.Class{
				Struct: reflection.Struct{
					Name:      rc.Name,
					PrefixCPP: orDefault(rc.Prefix, "U"),
					Package:   pkg,
					Size:      rc.Size,
					Meta:      reflection.MetaData(rc.Meta),
				},
				Flags: flags.ClassFlags(rc.Flags),
			}
			l.classes[rm.Name][rc.Name] = cls
			mod.Classes = append(mod.Classes, cls)
		}

		for _, rs := range rm.Structs {
			if err := checkName(rm.Name, "struct", rs.Name, l.structs[rm.Name]); err != nil {
				return err
			}
			s := &reflection.ScriptStruct{Struct: reflection.Struct{
				Name:      rs.Name,
				PrefixCPP: orDefault(rs.Prefix, "F"),
				Package:   pkg,
				Size:      rs.Size,
				Meta:      reflection.MetaData(rs.Meta),
			}}
			l.structs[rm.Name][rs.Name] = s
			mod.Structs = append(mod.Structs, s)
		}

		for _, re := range rm.Enums {
			if err := checkName(rm.Name, "enum", re.Name, l.enums[rm.Name]); err != nil {
				return err
			}
			form, err := parseCppForm(re.Form)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", rm.Name, re.Name, err)
			}
			e := &reflection.Enum{
				Name:    re.Name,
				CppType: orDefault(re.CppType, re.Name),
				CppForm: form,
				IsFlags: re.IsFlags,
				Package: pkg,
				Meta:    reflection.MetaData(re.Meta),
			}
			for _, v := range re.Values {
				e.Names = append(e.Names, reflection.EnumName{Name: v.Name, Value: v.Value})
			}
			l.enums[rm.Name][re.Name] = e
			mod.Enums = append(mod.Enums, e)
		}
	}
	return nil
}

func checkName[T any](module, kind, name string, seen map[string]T) error {
	if name == "" {
		return fmt.Errorf("module %s: %s without a name", module, kind)
	}
	if _, dup := seen[name]; dup {
		return fmt.Errorf("module %s: duplicate %s %q", module, kind, name)
	}
	return nil
}

func (l *linker) fill(rm *rawModule, mod *Module) {
	for i, rc := range rm.Classes {
		cls := mod.Classes[i]
		owner := rm.Name + "." + rc.Name

		if rc.Super != "" {
			if super := l.resolveClass(rm.Name, owner, rc.Super); super != nil {
				cls.Super = super
			}
		}
		for _, ref := range rc.Interfaces {
			if iface := l.resolveClass(rm.Name, owner, ref); iface != nil {
				cls.Interfaces = append(cls.Interfaces, iface)
			}
		}
		cls.Properties = l.properties(rm.Name, owner, rc.Properties)

		for _, rf := range rc.Functions {
			fnOwner := owner + "." + rf.Name
			if uint64(rf.Flags) > uint64(^uint32(0)) {
				l.problems = append(l.problems, fmt.Errorf("%s: function flags %#x overflow 32 bits", fnOwner, uint64(rf.Flags)))
				continue
			}
			params, ok := l.params(rm.Name, fnOwner, rf.Params)
			if !ok {
				continue
			}
			cls.Functions = append(cls.Functions, &reflection.Function{
				Name:    rf.Name,
				Package: mod.Package,
				Flags:   flags.FunctionFlags(rf.Flags),
				Params:  params,
				Meta:    reflection.MetaData(rf.Meta),
			})
		}
	}

	for i, rs := range rm.Structs {
		s := mod.Structs[i]
		owner := rm.Name + "." + rs.Name

		if rs.Super != "" {
			if super := l.resolveStruct(rm.Name, owner, rs.Super); super != nil {
				s.Super = super
			}
		}
		s.Properties = l.properties(rm.Name, owner, rs.Properties)
	}
}

// properties links a member list, dropping members whose references fail.
func (l *linker) properties(module, owner string, raws []rawProperty) []*reflection.Property {
	out := make([]*reflection.Property, 0, len(raws))
	for i := range raws {
		if p := l.property(module, owner, &raws[i]); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// params links a parameter list. A function with an unresolvable parameter
// is dropped entirely.
func (l *linker) params(module, owner string, raws []rawProperty) ([]*reflection.Property, bool) {
	out := make([]*reflection.Property, 0, len(raws))
	for i := range raws {
		p := l.property(module, owner, &raws[i])
		if p == nil {
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}

func (l *linker) property(module, owner string, rp *rawProperty) *reflection.Property {
	owner = owner + "." + rp.Name
	p := &reflection.Property{
		Name:     rp.Name,
		CPPType:  rp.CPPType,
		Offset:   rp.Offset,
		Flags:    flags.PropertyFlags(rp.Flags),
		ArrayDim: rp.ArrayDim,
		Class:    rp.Class,
		Kind:     reflection.KindForClass(rp.Class),
		Meta:     reflection.MetaData(rp.Meta),
	}

	if rp.Struct != "" {
		if p.Struct = l.resolveStruct(module, owner, rp.Struct); p.Struct == nil {
			return nil
		}
	}
	if rp.PropertyClass != "" {
		if p.PropertyClass = l.resolveClass(module, owner, rp.PropertyClass); p.PropertyClass == nil {
			return nil
		}
	}
	if rp.MetaClass != "" {
		if p.MetaClass = l.resolveClass(module, owner, rp.MetaClass); p.MetaClass == nil {
			return nil
		}
	}
	if rp.Enum != "" {
		if p.Enum = l.resolveEnum(module, owner, rp.Enum); p.Enum == nil {
			return nil
		}
	}

	for _, nested := range []struct {
		raw  *rawProperty
		dest **reflection.Property
	}{{rp.Inner, &p.Inner}, {rp.Key, &p.Key}, {rp.Value, &p.Value}} {
		if nested.raw == nil {
			continue
		}
		if *nested.dest = l.property(module, owner, nested.raw); *nested.dest == nil {
			return nil
		}
	}
	return p
}

func (l *linker) resolveClass(module, owner, ref string) *reflection.Class {
	return resolve(l, l.classes, "class", module, owner, ref)
}

func (l *linker) resolveStruct(module, owner, ref string) *reflection.ScriptStruct {
	return resolve(l, l.structs, "struct", module, owner, ref)
}

func (l *linker) resolveEnum(module, owner, ref string) *reflection.Enum {
	return resolve(l, l.enums, "enum", module, owner, ref)
}

// resolve looks ref up as "Module.Name", then as a bare name in module, then
// as a bare name that exactly one other module declares.
func resolve[T any](l *linker, index map[string]map[string]*T, kind, module, owner, ref string) *T {
	fail := func(reason string) *T {
		l.problems = append(l.problems, &UnresolvedReferenceError{
			Owner:  owner,
			Kind:   kind,
			Ref:    ref,
			Reason: reason,
		})
		return nil
	}

	if mod, name, ok := strings.Cut(ref, "."); ok {
		types, known := index[mod]
		if !known {
			return fail("unknown module " + mod)
		}
		if v := types[name]; v != nil {
			return v
		}
		return fail("")
	}

	if v := index[module][ref]; v != nil {
		return v
	}

	var found *T
	for _, types := range index {
		if v := types[ref]; v != nil {
			if found != nil {
				return fail("ambiguous")
			}
			found = v
		}
	}
	if found == nil {
		return fail("")
	}
	return found
}

func parseCppForm(s string) (reflection.CppForm, error) {
	switch s {
	case "", "Regular":
		return reflection.CppFormRegular, nil
	case "Namespaced":
		return reflection.CppFormNamespaced, nil
	case "EnumClass":
		return reflection.CppFormEnumClass, nil
	default:
		return 0, fmt.Errorf("unknown enum form %q", s)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
