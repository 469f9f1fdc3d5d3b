package metadata

import (
	"context"
	"strings"
	"testing"

	"github.com/dotnet-in-ue/nativebinder/internal/binder"
	"github.com/dotnet-in-ue/nativebinder/internal/cli/config"
	"github.com/dotnet-in-ue/nativebinder/internal/reflection/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
modules:
  - name: CoreUObject
    type: EngineRuntime
    classes:
      - name: Object
    structs:
      - name: Vector
        size: 12
        properties:
          - {name: X, cppType: float, class: FloatProperty}
  - name: Engine
    type: EngineRuntime
    classes:
      - name: Actor
        prefix: A
        super: CoreUObject.Object
      - name: Usable
        super: CoreUObject.Object
        flags: 0x4000
  - name: Game
    type: GameRuntime
    enums:
      - name: EWeapon
        form: EnumClass
        values:
          - {name: "EWeapon::Sword", value: 0}
          - {name: "EWeapon::Bow", value: 1}
    classes:
      - name: Foo
        prefix: A
        super: Engine.Actor
        interfaces: [Usable]
        properties:
          - {name: X, cppType: int32, class: IntProperty, offset: 544}
          - name: Path
            cppType: TArray<FVector>
            class: ArrayProperty
            inner: {name: Path, cppType: FVector, class: StructProperty, struct: Vector}
          - name: Arsenal
            cppType: TMap
            class: MapProperty
            key: {name: Arsenal_Key, cppType: EWeapon, class: EnumProperty, enum: EWeapon}
            value: {name: Arsenal, cppType: int32, class: IntProperty}
          - {name: Partner, cppType: AFoo*, class: ObjectProperty, propertyClass: Foo}
        functions:
          - name: DoThing
            flags: 0x20400
            params:
              - {name: In, cppType: float, class: FloatProperty, flags: 0x80}
              - {name: ReturnValue, cppType: bool, class: BoolProperty, flags: 0x580}
          - name: Reset
            flags: 0x400
`

// loadFixture exports the fixture snapshot and reads the tree back.
func loadFixture(t *testing.T) *Registry {
	t.Helper()
	snap, err := snapshot.Decode(strings.NewReader(fixture), snapshot.FormatYAML)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.OutputPath = t.TempDir()
	res, err := binder.Export(context.Background(), cfg, "", snap, nil)
	require.NoError(t, err)

	reg, err := LoadDir(res.OutputPath, "")
	require.NoError(t, err)
	return reg
}

func mustClass(t *testing.T, reg *Registry, name string) *Class {
	t.Helper()
	def, err := reg.Type(name)
	require.NoError(t, err)
	cls, ok := def.(*Class)
	require.True(t, ok, "%s is %T", name, def)
	return cls
}

func TestLoadDir_Modules(t *testing.T) {
	reg := loadFixture(t)

	mods := reg.Modules()
	require.Len(t, mods, 3)
	assert.Equal(t, "CoreUObject", mods[0].Name)
	assert.Equal(t, "Engine", mods[1].Name)
	assert.Equal(t, "Game", mods[2].Name)

	game, ok := reg.Module("Game")
	require.True(t, ok)
	assert.Equal(t, KindPackage, game.Kind)
	assert.Equal(t, "GameRuntime", game.PackageType)
	require.Len(t, game.Types, 2)
	assert.Equal(t, "Game.EWeapon", game.Types[0].QualifiedName())
	assert.Equal(t, "Game.Foo", game.Types[1].QualifiedName())
}

func TestLoadDir_Types(t *testing.T) {
	reg := loadFixture(t)

	var names []string
	for _, def := range reg.Types() {
		names = append(names, def.QualifiedName()+":"+def.TypeKind())
	}
	assert.Equal(t, []string{
		"CoreUObject.Object:UObject",
		"CoreUObject.Vector:UStruct",
		"Engine.Actor:UObject",
		"Engine.Usable:UInterface",
		"Game.EWeapon:UEnum",
		"Game.Foo:UObject",
	}, names)

	usable := mustClass(t, reg, "Usable")
	assert.True(t, usable.IsInterface())

	def, err := reg.Type("EWeapon")
	require.NoError(t, err)
	enum, ok := def.(*Enum)
	require.True(t, ok)
	assert.Equal(t, "EnumClass", enum.EnumKind)
	assert.Equal(t, int64(1), enum.MaximumValue)
	assert.Equal(t, []EnumValue{{Name: "EWeapon::Sword", Value: 0}, {Name: "EWeapon::Bow", Value: 1}}, enum.Values)
}

func TestLoadDir_ClassDocument(t *testing.T) {
	reg := loadFixture(t)
	foo := mustClass(t, reg, "Game.Foo")

	assert.Equal(t, "Game", foo.Module)
	assert.Equal(t, "AFoo", foo.CppName)
	require.NotNil(t, foo.Parent)
	assert.Equal(t, "Engine.Actor", foo.Parent.QualifiedName())
	assert.Equal(t, "AActor", foo.Parent.CppName)
	assert.Equal(t, []string{"Usable"}, foo.Interfaces)

	require.Len(t, foo.Properties, 4)
	x := foo.Properties[0]
	assert.Equal(t, "X", x.Name)
	assert.Equal(t, KindProperty, x.Kind)
	assert.Equal(t, 544, x.Offset)
	assert.Equal(t, 1, x.Dim())

	path := foo.Properties[1]
	require.Len(t, path.GenericTypeParameters, 1)
	inner := path.GenericTypeParameters[0]
	assert.Equal(t, FieldTypeProperty, inner.FieldType)
	require.NotNil(t, inner.Property.Type)
	assert.Equal(t, "CoreUObject.Vector", inner.Property.Type.QualifiedName())
	assert.Equal(t, "TArray", path.CleanRawType())
	assert.Equal(t, "TArray<FVector>", path.PrettyType())

	arsenal := foo.Properties[2]
	require.Len(t, arsenal.GenericTypeParameters, 2)
	assert.Equal(t, "Arsenal_Key", arsenal.GenericTypeParameters[0].Property.Name)
	assert.Equal(t, "Arsenal", arsenal.GenericTypeParameters[1].Property.Name)
	assert.Equal(t, "TMap<EWeapon,int32>", arsenal.PrettyType())
	assert.Equal(t, "TMap", arsenal.CleanRawType())

	partner := foo.Properties[3]
	require.NotNil(t, partner.Type)
	assert.Equal(t, "Game.Foo", partner.Type.QualifiedName())
}

func TestLoadDir_BackReferences(t *testing.T) {
	reg := loadFixture(t)
	foo := mustClass(t, reg, "Foo")

	for _, p := range foo.Properties {
		assert.True(t, p.Owner == TypeDefinition(foo), p.Name)
		assert.Nil(t, p.Function)
	}
	nested := foo.Properties[1].GenericTypeParameters[0].Property
	assert.True(t, nested.Owner == TypeDefinition(foo))

	require.Len(t, foo.Functions, 2)
	doThing := foo.Functions[0]
	assert.Same(t, foo, doThing.Class)
	require.Len(t, doThing.Parameters, 1)
	assert.Same(t, doThing, doThing.Parameters[0].Function)
	require.NotNil(t, doThing.Return)
	assert.Equal(t, "ReturnValue", doThing.Return.Name)
	assert.Same(t, doThing, doThing.Return.Function)

	reset := foo.Functions[1]
	assert.Nil(t, reset.Return)
	assert.Equal(t, "void", reset.ReturnOrVoid().RawType)
	assert.Empty(t, reset.Parameters)
}

func TestRegistry_TypeLookup(t *testing.T) {
	a := &Struct{Definition: Definition{Field: Field{Kind: KindStruct, Name: "Shared"}, Module: "A"}}
	b := &Struct{Definition: Definition{Field: Field{Kind: KindStruct, Name: "Shared"}, Module: "B"}}
	reg, err := NewRegistry(a, b)
	require.NoError(t, err)

	got, err := reg.Type("B.Shared")
	require.NoError(t, err)
	assert.True(t, got == TypeDefinition(b))

	_, err = reg.Type("Shared")
	assert.ErrorIs(t, err, ErrAmbiguousType)

	_, err = reg.Type("Nope")
	assert.ErrorIs(t, err, ErrTypeNotFound)

	// Modules without a package document are synthesized.
	mod, ok := reg.Module("A")
	require.True(t, ok)
	assert.Len(t, mod.Types, 1)
}

func TestRegistry_Duplicates(t *testing.T) {
	a := &Enum{Definition: Definition{Field: Field{Kind: KindEnum, Name: "E"}, Module: "M"}}
	_, err := NewRegistry(a, a)
	assert.ErrorIs(t, err, ErrDuplicateType)

	m := &Module{Field: Field{Kind: KindPackage, Name: "M"}}
	_, err = NewRegistry(m, m)
	assert.Error(t, err)

	_, err = NewRegistry("not a document")
	assert.Error(t, err)
}

func TestRegistry_TypesByPattern(t *testing.T) {
	reg := loadFixture(t)

	names := func(defs []TypeDefinition) []string {
		var out []string
		for _, d := range defs {
			out = append(out, d.QualifiedName())
		}
		return out
	}

	assert.Equal(t, []string{"Engine.Actor"}, names(reg.TypesByPattern("A*")))
	assert.Equal(t, []string{"CoreUObject.Vector", "Engine.Actor", "Game.EWeapon", "Game.Foo"}, names(reg.TypesByPattern("*o*")))
	assert.Len(t, reg.TypesByPattern("*"), 6)
	assert.Empty(t, reg.TypesByPattern("Z*"))
}

func TestRegistry_AllPropertiesAndReferences(t *testing.T) {
	reg := loadFixture(t)

	props := reg.AllProperties()
	// Vector.X, four Foo members, DoThing's parameter and return value.
	assert.Len(t, props, 7)
	assert.Len(t, reg.AllProperties(), 7)

	refs, err := reg.ReferencesTo("EWeapon")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Arsenal", refs[0].Name)

	refs, err = reg.ReferencesTo("CoreUObject.Vector")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Path", refs[0].Name)

	_, err = reg.ReferencesTo("Ghost")
	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		s, pattern string
		want       bool
	}{
		{"Actor", "Actor", true},
		{"Actor", "*", true},
		{"Actor", "Act*", true},
		{"Actor", "*tor", true},
		{"Actor", "A*r", true},
		{"Actor", "A*t*r", true},
		{"Actor", "Act", false},
		{"A", "A*A", false},
		{"Actor", "B*", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.s, tt.pattern), "%s ~ %s", tt.s, tt.pattern)
	}
}
