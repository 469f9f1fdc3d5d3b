package typeinfo

import (
	"github.com/dotnet-in-ue/nativebinder/internal/flags"
	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
)

type mapResolver map[string]*reflection.Package

func (r mapResolver) FindPackage(name string) *reflection.Package { return r[name] }

func newPackage(name string) *reflection.Package {
	return &reflection.Package{
		Name:       ScriptPrefix + name,
		FolderName: "/Script",
		FileName:   name,
	}
}

func newClass(pkg *reflection.Package, name string) *reflection.Class {
	return &reflection.Class{Struct: reflection.Struct{
		Name:      name,
		PrefixCPP: "U",
		Package:   pkg,
		Size:      48,
	}}
}

func newScriptStruct(pkg *reflection.Package, name string) *reflection.ScriptStruct {
	return &reflection.ScriptStruct{Struct: reflection.Struct{
		Name:      name,
		PrefixCPP: "F",
		Package:   pkg,
		Size:      12,
	}}
}

func numericProp(name, cppType, class string) *reflection.Property {
	return &reflection.Property{
		Name:    name,
		CPPType: cppType,
		Class:   class,
		Kind:    reflection.KindNumeric,
	}
}

// fooScenario builds class Foo in package Game with an int32 property X and a
// function DoThing(float In) -> bool.
func fooScenario() (*reflection.Package, *reflection.Class) {
	game := newPackage("Game")
	foo := newClass(game, "Foo")
	foo.Properties = []*reflection.Property{numericProp("X", "int32", "IntProperty")}

	ret := &reflection.Property{
		Name:    "ReturnValue",
		CPPType: "bool",
		Class:   "BoolProperty",
		Kind:    reflection.KindBool,
		Flags:   flags.PropParm | flags.PropOutParm | flags.PropReturnParm,
	}
	in := numericProp("In", "float", "FloatProperty")
	in.Flags = flags.PropParm
	foo.Functions = []*reflection.Function{{
		Name:    "DoThing",
		Package: game,
		Flags:   flags.FuncNative | flags.FuncPublic,
		Params:  []*reflection.Property{in, ret},
	}}
	return game, foo
}
