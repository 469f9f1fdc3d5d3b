package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument_Dispatch(t *testing.T) {
	tests := []struct {
		kind string
		want any
	}{
		{KindPackage, &Module{}},
		{KindObject, &Class{}},
		{KindInterface, &Class{}},
		{KindStruct, &Struct{}},
		{KindEnum, &Enum{}},
		{KindFunction, &Function{}},
		{KindDelegate, &Function{}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(`{"Kind":"` + tt.kind + `","Name":"N"}`))
			require.NoError(t, err)
			assert.IsType(t, tt.want, doc)
		})
	}
}

func TestDecodeDocument_Errors(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"Kind":"UProperty"}`))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = DecodeDocument([]byte(`{"Name":"NoKind"}`))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = DecodeDocument([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeDocument([]byte(`{"Kind":"UStruct","Parent":{"FieldType":"Alias"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown reference field type")

	_, err = DecodeDocument([]byte(`{"Kind":"UStruct","Properties":[{"Name":"P","GenericTypeParameters":[{"FieldType":"Property"}]}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a property")
}

func TestDecodeDocument_Delegate(t *testing.T) {
	data := `{
  "Kind": "UDelegate",
  "Name": "OnHit",
  "Static": false,
  "Final": false,
  "Flags": 1114112,
  "FlagsText": "",
  "Parameters": [
    {"Kind": "UProperty", "Name": "Damage", "RawType": "float", "Offset": 0, "Flags": 128, "FlagsText": "Parm", "PropertyType": "FloatProperty"}
  ],
  "Return": {"RawType": "void"}
}`
	doc, err := DecodeDocument([]byte(data))
	require.NoError(t, err)

	fn, ok := doc.(*Function)
	require.True(t, ok)
	assert.True(t, fn.IsDelegate())
	assert.Nil(t, fn.Return)
	assert.True(t, fn.ReturnOrVoid().IsVoid())
	require.Len(t, fn.Parameters, 1)
	assert.Same(t, fn, fn.Parameters[0].Function)
	assert.Nil(t, fn.Class)
}

func TestDecodeDocument_LargeFlags(t *testing.T) {
	data := `{"Kind":"UStruct","Name":"S","Module":"M","Properties":[{"Kind":"UProperty","Name":"P","Flags":18446744073709551615,"ArrayDim":4}]}`
	doc, err := DecodeDocument([]byte(data))
	require.NoError(t, err)

	s := doc.(*Struct)
	require.Len(t, s.Properties, 1)
	assert.Equal(t, uint64(18446744073709551615), s.Properties[0].Flags)
	assert.Equal(t, 4, s.Properties[0].Dim())
	assert.True(t, s.Properties[0].Owner == TypeDefinition(s))
}

func TestProperty_Types(t *testing.T) {
	enumRef := &TypeReference{FieldType: FieldTypeName, Module: "Game", Name: "EWeapon", CppName: "EWeapon"}
	inner := &Property{RawType: "TArray", GenericTypeParameters: []*TypeReference{
		{FieldType: FieldTypeName, CppName: "FVector"},
	}}

	tests := []struct {
		name   string
		prop   *Property
		clean  string
		pretty string
	}{
		{"plain", &Property{RawType: "int32"}, "int32", "int32"},
		{"no generics keeps brackets", &Property{RawType: "TArray<int32>"}, "TArray<int32>", "TArray<int32>"},
		{"spelled generics", &Property{RawType: "TArray<EWeapon>", GenericTypeParameters: []*TypeReference{enumRef}}, "TArray", "TArray<EWeapon>"},
		{"bare generics", &Property{RawType: "TSet", GenericTypeParameters: []*TypeReference{enumRef}}, "TSet", "TSet<EWeapon>"},
		{"nested", &Property{RawType: "TMap", GenericTypeParameters: []*TypeReference{
			enumRef,
			{FieldType: FieldTypeProperty, Property: inner},
		}}, "TMap", "TMap<EWeapon,TArray<FVector>>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.clean, tt.prop.CleanRawType())
			assert.Equal(t, tt.pretty, tt.prop.PrettyType())
		})
	}
}

func TestTypeReference_QualifiedName(t *testing.T) {
	ref := &TypeReference{FieldType: FieldTypeName, Module: "Engine", Name: "Actor"}
	assert.Equal(t, "Engine.Actor", ref.QualifiedName())

	prop := &TypeReference{FieldType: FieldTypeProperty, Property: &Property{RawType: "int32"}}
	assert.Empty(t, prop.QualifiedName())
	assert.Equal(t, "int32", prop.PrettyType())
}

func TestLoadDir_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad.umeta"), []byte(`{"Kind":"UWidget"}`), 0o644))

	_, err := LoadDir(dir, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.True(t, strings.Contains(err.Error(), "Bad.umeta"))

	_, err = LoadDir(filepath.Join(dir, "missing"), "")
	assert.Error(t, err)
}

func TestLoadDir_Extension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Game.json"), []byte(`{"Kind":"UPackage","Name":"Game"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o644))

	reg, err := LoadDir(dir, ".json")
	require.NoError(t, err)
	_, ok := reg.Module("Game")
	assert.True(t, ok)

	reg, err = LoadDir(dir, "")
	require.NoError(t, err)
	assert.Empty(t, reg.Modules())
}
