package typeinfo

import (
	"encoding/json"
	"testing"

	"github.com/dotnet-in-ue/nativebinder/internal/flags"
	"github.com/dotnet-in-ue/nativebinder/internal/reflection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyDispatch(t *testing.T) {
	game := newPackage("Game")
	vec := newScriptStruct(game, "Vector")
	actor := newClass(game, "Actor")
	actor.PrefixCPP = "A"
	object := newClass(game, "Object")
	color := &reflection.Enum{Name: "EColor", CppType: "EColor", Package: game}

	tests := []struct {
		name        string
		prop        *reflection.Property
		wantType    string
		wantGeneric []string
		unknown     bool
	}{
		{
			name:     "struct",
			prop:     &reflection.Property{Name: "Loc", CPPType: "FVector", Class: "StructProperty", Kind: reflection.KindStruct, Struct: vec},
			wantType: "FVector",
		},
		{
			name:     "object",
			prop:     &reflection.Property{Name: "Owner", CPPType: "AActor*", Class: "ObjectProperty", Kind: reflection.KindObject, PropertyClass: actor},
			wantType: "AActor",
		},
		{
			name:        "class",
			prop:        &reflection.Property{Name: "Spawn", CPPType: "TSubclassOf<AActor>", Class: "ClassProperty", Kind: reflection.KindClass, PropertyClass: object, MetaClass: actor},
			wantType:    "UObject",
			wantGeneric: []string{"TypeName:AActor"},
		},
		{
			name:        "weak object",
			prop:        &reflection.Property{Name: "Target", CPPType: "TWeakObjectPtr<AActor>", Class: "WeakObjectProperty", Kind: reflection.KindWeakObject, PropertyClass: actor},
			wantGeneric: []string{"TypeName:AActor"},
		},
		{
			name:        "soft object",
			prop:        &reflection.Property{Name: "Asset", CPPType: "TSoftObjectPtr<AActor>", Class: "SoftObjectProperty", Kind: reflection.KindSoftObject, PropertyClass: actor},
			wantGeneric: []string{"TypeName:AActor"},
		},
		{
			name:        "lazy object",
			prop:        &reflection.Property{Name: "Lazy", CPPType: "TLazyObjectPtr<AActor>", Class: "LazyObjectProperty", Kind: reflection.KindLazyObject, PropertyClass: actor},
			wantGeneric: []string{"TypeName:AActor"},
		},
		{
			name: "numeric",
			prop: numericProp("Count", "int32", "IntProperty"),
		},
		{
			name:        "numeric with enum",
			prop:        &reflection.Property{Name: "Color", CPPType: "TEnumAsByte<EColor>", Class: "ByteProperty", Kind: reflection.KindNumeric, Enum: color},
			wantGeneric: []string{"TypeName:EColor"},
		},
		{
			name:     "enum",
			prop:     &reflection.Property{Name: "Tint", CPPType: "EColor", Class: "EnumProperty", Kind: reflection.KindEnum, Enum: color},
			wantType: "EColor",
		},
		{
			name:        "array",
			prop:        &reflection.Property{Name: "Points", CPPType: "TArray", Class: "ArrayProperty", Kind: reflection.KindArray, Inner: &reflection.Property{Name: "Points", CPPType: "FVector", Class: "StructProperty", Kind: reflection.KindStruct, Struct: vec}},
			wantGeneric: []string{"Property:FVector"},
		},
		{
			name: "map",
			prop: &reflection.Property{
				Name: "Scores", CPPType: "TMap", Class: "MapProperty", Kind: reflection.KindMap,
				Key:   &reflection.Property{Name: "Scores_Key", CPPType: "FString", Class: "StrProperty", Kind: reflection.KindStr},
				Value: numericProp("Scores", "int32", "IntProperty"),
			},
			wantGeneric: []string{"Property:FString", "Property:int32"},
		},
		{
			name:        "set",
			prop:        &reflection.Property{Name: "Tags", CPPType: "TSet", Class: "SetProperty", Kind: reflection.KindSet, Inner: &reflection.Property{Name: "Tags", CPPType: "FName", Class: "NameProperty", Kind: reflection.KindName}},
			wantGeneric: []string{"Property:FName"},
		},
		{name: "bool", prop: &reflection.Property{Name: "bOn", CPPType: "bool", Class: "BoolProperty", Kind: reflection.KindBool}},
		{name: "name", prop: &reflection.Property{Name: "Id", CPPType: "FName", Class: "NameProperty", Kind: reflection.KindName}},
		{name: "str", prop: &reflection.Property{Name: "Label", CPPType: "FString", Class: "StrProperty", Kind: reflection.KindStr}},
		{name: "text", prop: &reflection.Property{Name: "Title", CPPType: "FText", Class: "TextProperty", Kind: reflection.KindText}},
		{name: "delegate", prop: &reflection.Property{Name: "OnDone", CPPType: "FOnDone", Class: "DelegateProperty", Kind: reflection.KindDelegate}},
		{name: "multicast delegate", prop: &reflection.Property{Name: "OnHit", CPPType: "FOnHit", Class: "MulticastInlineDelegateProperty", Kind: reflection.KindMulticastDelegate}},
		{
			name:    "unknown",
			prop:    &reflection.Property{Name: "Field", CPPType: "FFieldPath", Class: "FieldPathProperty", Kind: reflection.KindUnknown},
			unknown: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewCollector().TouchProperty(tt.prop)
			doc := info.Document()

			if tt.wantType == "" {
				assert.False(t, doc.Has("Type"))
				assert.Nil(t, info.Type())
			} else {
				ref := doc.mustDocument(t, "Type")
				assert.Equal(t, "TypeName", ref.GetString("FieldType"))
				assert.Equal(t, tt.wantType, ref.GetString("CppName"))
				require.NotNil(t, info.Type())
			}

			var got []string
			if arr, ok := doc.GetArray("GenericTypeParameters"); ok {
				for _, v := range arr {
					ref := v.(*Document)
					switch ref.GetString("FieldType") {
					case "TypeName":
						got = append(got, "TypeName:"+ref.GetString("CppName"))
					case "Property":
						got = append(got, "Property:"+ref.mustDocument(t, "Property").GetString("RawType"))
					}
				}
			}
			assert.Equal(t, tt.wantGeneric, got)
			assert.Len(t, info.GenericArguments(), len(tt.wantGeneric))

			assert.Equal(t, tt.unknown, doc.Has("IsUnknown"))
		})
	}
}

func TestClassProperty_GenericsBeforeType(t *testing.T) {
	game := newPackage("Game")
	actor := newClass(game, "Actor")
	prop := &reflection.Property{Name: "Spawn", CPPType: "TSubclassOf<AActor>", Class: "ClassProperty", Kind: reflection.KindClass, PropertyClass: newClass(game, "Class"), MetaClass: actor}

	keys := NewCollector().TouchProperty(prop).Document().Keys()
	assert.Equal(t, []string{"Kind", "Name", "RawType", "Offset", "Flags", "FlagsText", "PropertyType", "GenericTypeParameters", "Type"}, keys)
}

func TestArrayOfStruct(t *testing.T) {
	game := newPackage("Game")
	vec := newScriptStruct(game, "Vector")
	prop := &reflection.Property{
		Name:    "Path",
		CPPType: "TArray",
		Class:   "ArrayProperty",
		Kind:    reflection.KindArray,
		Inner:   &reflection.Property{Name: "Path", CPPType: "FVector", Class: "StructProperty", Kind: reflection.KindStruct, Struct: vec},
	}

	c := NewCollector()
	info := c.TouchProperty(prop)

	args := info.GenericArguments()
	require.Len(t, args, 1)
	require.NotNil(t, args[0].Property)
	assert.Nil(t, args[0].Type)
	assert.Same(t, TypeNode(c.TouchStruct(vec)), args[0].Property.Type())

	data, err := json.Marshal(info.Document())
	require.NoError(t, err)

	var out struct {
		GenericTypeParameters []struct {
			FieldType string
			Property  struct {
				Name string
				Type struct {
					FieldType, Module, Name, CppName string
				}
			}
		}
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.GenericTypeParameters, 1)
	gp := out.GenericTypeParameters[0]
	assert.Equal(t, "Property", gp.FieldType)
	assert.Equal(t, "TypeName", gp.Property.Type.FieldType)
	assert.Equal(t, "Game", gp.Property.Type.Module)
	assert.Equal(t, "Vector", gp.Property.Type.Name)
	assert.Equal(t, "FVector", gp.Property.Type.CppName)
}

func TestMapKeyThenValue(t *testing.T) {
	prop := &reflection.Property{
		Name: "Lookup", CPPType: "TMap", Class: "MapProperty", Kind: reflection.KindMap,
		Key:   &reflection.Property{Name: "Lookup_Key", CPPType: "FName", Class: "NameProperty", Kind: reflection.KindName},
		Value: &reflection.Property{Name: "Lookup", CPPType: "float", Class: "FloatProperty", Kind: reflection.KindNumeric},
	}

	args := NewCollector().TouchProperty(prop).GenericArguments()
	require.Len(t, args, 2)
	assert.Equal(t, "Lookup_Key", args[0].Property.Name())
	assert.Equal(t, "Lookup", args[1].Property.Name())
}

func TestPropertyDocumentFields(t *testing.T) {
	prop := &reflection.Property{
		Name:     "Slots",
		CPPType:  "int32",
		Offset:   64,
		Flags:    flags.PropEdit | flags.PropBlueprintVisible,
		ArrayDim: 4,
		Class:    "IntProperty",
		Kind:     reflection.KindNumeric,
		Meta:     reflection.MetaData{"Category": "Inventory"},
	}

	doc := NewCollector().TouchProperty(prop).Document()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Kind":"UProperty","Name":"Slots","RawType":"int32","Meta":{"Category":"Inventory"},"Offset":64,"Flags":5,"FlagsText":"Edit | BlueprintVisible","PropertyType":"IntProperty","ArrayDim":4}`,
		string(data))

	prop.ArrayDim = 1
	assert.False(t, NewCollector().TouchProperty(prop).Document().Has("ArrayDim"))
}

func TestMissingReferenceIsSkipped(t *testing.T) {
	prop := &reflection.Property{Name: "Broken", CPPType: "FMissing", Class: "StructProperty", Kind: reflection.KindStruct}
	info := NewCollector().TouchProperty(prop)
	assert.False(t, info.Document().Has("Type"))
	assert.False(t, info.Document().Has("IsUnknown"))

	arr := &reflection.Property{Name: "Broken", CPPType: "TArray", Class: "ArrayProperty", Kind: reflection.KindArray}
	assert.False(t, NewCollector().TouchProperty(arr).Document().Has("GenericTypeParameters"))
}
