package typeinfo

import "fmt"

// Kind tags every exported document.
type Kind uint8

const (
	KindNone Kind = iota
	KindPackage
	KindObject
	KindInterface
	KindStruct
	KindEnum
	KindProperty
	KindFunction
	KindDelegate
)

// String returns the name written to the document's Kind field.
func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "UPackage"
	case KindObject:
		return "UObject"
	case KindInterface:
		return "UInterface"
	case KindStruct:
		return "UStruct"
	case KindEnum:
		return "UEnum"
	case KindProperty:
		return "UProperty"
	case KindFunction:
		return "UFunction"
	case KindDelegate:
		return "UDelegate"
	default:
		return "None"
	}
}

// ModuleType classifies the module a package was built from.
type ModuleType int

const (
	ModuleProgram ModuleType = iota
	ModuleEngineRuntime
	ModuleEngineUncooked
	ModuleEngineDeveloper
	ModuleEngineEditor
	ModuleEngineThirdParty
	ModuleGameRuntime
	ModuleGameUncooked
	ModuleGameDeveloper
	ModuleGameEditor
	ModuleGameThirdParty

	// ModuleMax marks a package nobody classified.
	ModuleMax
)

var moduleTypeNames = [...]string{
	ModuleProgram:          "Program",
	ModuleEngineRuntime:    "EngineRuntime",
	ModuleEngineUncooked:   "EngineUncooked",
	ModuleEngineDeveloper:  "EngineDeveloper",
	ModuleEngineEditor:     "EngineEditor",
	ModuleEngineThirdParty: "EngineThirdParty",
	ModuleGameRuntime:      "GameRuntime",
	ModuleGameUncooked:     "GameUncooked",
	ModuleGameDeveloper:    "GameDeveloper",
	ModuleGameEditor:       "GameEditor",
	ModuleGameThirdParty:   "GameThirdParty",
	ModuleMax:              "Max",
}

func (t ModuleType) String() string {
	if t < 0 || int(t) >= len(moduleTypeNames) {
		return "Unknown Module Type"
	}
	return moduleTypeNames[t]
}

// IsGame reports whether the module belongs to the game rather than the engine.
func (t ModuleType) IsGame() bool {
	switch t {
	case ModuleGameRuntime, ModuleGameUncooked, ModuleGameDeveloper, ModuleGameEditor, ModuleGameThirdParty:
		return true
	default:
		return false
	}
}

// ParseModuleType maps a module type name to its value. An empty name is ModuleMax.
func ParseModuleType(name string) (ModuleType, error) {
	if name == "" {
		return ModuleMax, nil
	}
	for i, n := range moduleTypeNames {
		if n == name {
			return ModuleType(i), nil
		}
	}
	return ModuleMax, fmt.Errorf("unknown module type %q", name)
}
