package reflection

import "github.com/dotnet-in-ue/nativebinder/internal/flags"

// PropertyKind is the closed set of property categories the collector knows
// how to describe. KindUnknown is the catch-all for everything else.
type PropertyKind int

const (
	KindUnknown PropertyKind = iota
	KindStruct
	KindObject
	KindClass
	KindWeakObject
	KindSoftObject
	KindLazyObject
	KindNumeric
	KindEnum
	KindBool
	KindName
	KindStr
	KindText
	KindArray
	KindMap
	KindSet
	KindMulticastDelegate
	KindDelegate
)

var kindNames = map[PropertyKind]string{
	KindUnknown:           "Unknown",
	KindStruct:            "Struct",
	KindObject:            "Object",
	KindClass:             "Class",
	KindWeakObject:        "WeakObject",
	KindSoftObject:        "SoftObject",
	KindLazyObject:        "LazyObject",
	KindNumeric:           "Numeric",
	KindEnum:              "Enum",
	KindBool:              "Bool",
	KindName:              "Name",
	KindStr:               "Str",
	KindText:              "Text",
	KindArray:             "Array",
	KindMap:               "Map",
	KindSet:               "Set",
	KindMulticastDelegate: "MulticastDelegate",
	KindDelegate:          "Delegate",
}

func (k PropertyKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParsePropertyKind maps a kind name back to its value. Unrecognized names
// yield KindUnknown.
func ParsePropertyKind(name string) PropertyKind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindUnknown
}

// numericClasses are the engine property classes that belong to KindNumeric.
var numericClasses = map[string]bool{
	"ByteProperty":   true,
	"Int8Property":   true,
	"Int16Property":  true,
	"IntProperty":    true,
	"Int64Property":  true,
	"UInt16Property": true,
	"UInt32Property": true,
	"UInt64Property": true,
	"FloatProperty":  true,
	"DoubleProperty": true,
}

// KindForClass classifies an engine property class name such as
// "ArrayProperty" or "IntProperty".
func KindForClass(class string) PropertyKind {
	if numericClasses[class] {
		return KindNumeric
	}
	switch class {
	case "StructProperty":
		return KindStruct
	case "ObjectProperty":
		return KindObject
	case "ClassProperty":
		return KindClass
	case "WeakObjectProperty":
		return KindWeakObject
	case "SoftObjectProperty", "SoftClassProperty":
		return KindSoftObject
	case "LazyObjectProperty":
		return KindLazyObject
	case "EnumProperty":
		return KindEnum
	case "BoolProperty":
		return KindBool
	case "NameProperty":
		return KindName
	case "StrProperty":
		return KindStr
	case "TextProperty":
		return KindText
	case "ArrayProperty":
		return KindArray
	case "MapProperty":
		return KindMap
	case "SetProperty":
		return KindSet
	case "MulticastDelegateProperty", "MulticastInlineDelegateProperty", "MulticastSparseDelegateProperty":
		return KindMulticastDelegate
	case "DelegateProperty":
		return KindDelegate
	default:
		return KindUnknown
	}
}

// Property is a reflected struct member or function parameter.
//
// Which reference fields are populated depends on Kind:
//
//	KindStruct                         Struct
//	KindObject                         PropertyClass
//	KindClass                          PropertyClass, MetaClass
//	KindWeakObject/SoftObject/Lazy     PropertyClass
//	KindNumeric                        Enum (optional)
//	KindEnum                           Enum
//	KindArray                          Inner
//	KindMap                            Key, Value
//	KindSet                            Inner
type Property struct {
	Name    string
	CPPType string
	Offset  int
	Flags   flags.PropertyFlags

	// ArrayDim is the fixed inline array size; 0 and 1 both mean scalar.
	ArrayDim int

	// Class is the engine property class name, e.g. "IntProperty".
	Class string
	Kind  PropertyKind

	Struct        *ScriptStruct
	PropertyClass *Class
	MetaClass     *Class
	Enum          *Enum
	Inner         *Property
	Key           *Property
	Value         *Property

	Meta MetaData
}

// IsReturn reports whether the property is a function's return slot.
func (p *Property) IsReturn() bool {
	return p.Flags.Has(flags.PropReturnParm)
}
