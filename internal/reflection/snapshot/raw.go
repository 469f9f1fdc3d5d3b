package snapshot

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dotnet-in-ue/nativebinder/internal/flags"
	"gopkg.in/yaml.v3"
)

// Mask is a flag bitmask that decodes from either a number or a string such
// as "0x4000".
type Mask uint64

func (m *Mask) set(text string) error {
	v, err := flags.ParseMask(text)
	if err != nil {
		return err
	}
	*m = Mask(v)
	return nil
}

// UnmarshalYAML accepts any scalar.
func (m *Mask) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: flags must be a scalar", node.Line)
	}
	if err := m.set(node.Value); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// UnmarshalJSON accepts a number or a string.
func (m *Mask) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return m.set(s)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flags must be a number or string: %w", err)
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("flags must be an unsigned integer: %w", err)
	}
	*m = Mask(v)
	return nil
}

type rawSnapshot struct {
	Modules []rawModule `yaml:"modules" json:"modules"`
}

type rawModule struct {
	Name    string            `yaml:"name" json:"name"`
	Type    string            `yaml:"type" json:"type"`
	Folder  string            `yaml:"folder" json:"folder"`
	File    string            `yaml:"file" json:"file"`
	Meta    map[string]string `yaml:"meta" json:"meta"`
	Classes []rawClass        `yaml:"classes" json:"classes"`
	Structs []rawStruct       `yaml:"structs" json:"structs"`
	Enums   []rawEnum         `yaml:"enums" json:"enums"`
}

type rawStruct struct {
	Name       string            `yaml:"name" json:"name"`
	Prefix     string            `yaml:"prefix" json:"prefix"`
	Super      string            `yaml:"super" json:"super"`
	Size       int               `yaml:"size" json:"size"`
	Meta       map[string]string `yaml:"meta" json:"meta"`
	Properties []rawProperty     `yaml:"properties" json:"properties"`
}

type rawClass struct {
	rawStruct  `yaml:",inline"`
	Flags      Mask          `yaml:"flags" json:"flags"`
	Interfaces []string      `yaml:"interfaces" json:"interfaces"`
	Functions  []rawFunction `yaml:"functions" json:"functions"`
}

type rawFunction struct {
	Name   string            `yaml:"name" json:"name"`
	Flags  Mask              `yaml:"flags" json:"flags"`
	Params []rawProperty     `yaml:"params" json:"params"`
	Meta   map[string]string `yaml:"meta" json:"meta"`
}

type rawProperty struct {
	Name     string `yaml:"name" json:"name"`
	CPPType  string `yaml:"cppType" json:"cppType"`
	Class    string `yaml:"class" json:"class"`
	Offset   int    `yaml:"offset" json:"offset"`
	Flags    Mask   `yaml:"flags" json:"flags"`
	ArrayDim int    `yaml:"arrayDim" json:"arrayDim"`

	Struct        string `yaml:"struct" json:"struct"`
	PropertyClass string `yaml:"propertyClass" json:"propertyClass"`
	MetaClass     string `yaml:"metaClass" json:"metaClass"`
	Enum          string `yaml:"enum" json:"enum"`

	Inner *rawProperty `yaml:"inner" json:"inner"`
	Key   *rawProperty `yaml:"key" json:"key"`
	Value *rawProperty `yaml:"value" json:"value"`

	Meta map[string]string `yaml:"meta" json:"meta"`
}

type rawEnum struct {
	Name    string            `yaml:"name" json:"name"`
	CppType string            `yaml:"cppType" json:"cppType"`
	Form    string            `yaml:"form" json:"form"`
	IsFlags bool              `yaml:"isFlags" json:"isFlags"`
	Values  []rawEnumValue    `yaml:"values" json:"values"`
	Meta    map[string]string `yaml:"meta" json:"meta"`
}

type rawEnumValue struct {
	Name  string `yaml:"name" json:"name"`
	Value int64  `yaml:"value" json:"value"`
}
