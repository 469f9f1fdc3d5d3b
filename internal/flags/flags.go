// Package flags decodes the engine's class, function and property flag
// bitmasks into the human-readable text written next to the raw mask in
// every exported document.
package flags

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator joins the labels of a formatted mask.
const Separator = " | "

// Label pairs a single flag bit with its display name.
type Label[T ~uint32 | ~uint64] struct {
	Bit  T
	Name string
}

// format walks the table in declared order and joins the labels of every set bit.
// Bits missing from the table never appear in the text.
func format[T ~uint32 | ~uint64](mask T, table []Label[T]) string {
	var b strings.Builder
	for _, l := range table {
		if mask&l.Bit == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(l.Name)
	}
	return b.String()
}

// Universe names one of the three flag enumerations.
type Universe string

const (
	UniverseClass    Universe = "class"
	UniverseFunction Universe = "function"
	UniverseProperty Universe = "property"
)

// Universes lists every known flag enumeration.
func Universes() []Universe {
	return []Universe{UniverseClass, UniverseFunction, UniverseProperty}
}

// ParseMask parses a decimal, 0x-hex or 0b-binary mask.
func ParseMask(text string) (uint64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("empty flag mask")
	}
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid flag mask %q: %w", text, err)
	}
	return v, nil
}

// FormatMask formats mask using the table of the given universe.
func FormatMask(u Universe, mask uint64) (string, error) {
	switch u {
	case UniverseClass:
		if mask > uint64(^uint32(0)) {
			return "", fmt.Errorf("class flags mask %#x overflows 32 bits", mask)
		}
		return ClassFlags(mask).String(), nil
	case UniverseFunction:
		if mask > uint64(^uint32(0)) {
			return "", fmt.Errorf("function flags mask %#x overflows 32 bits", mask)
		}
		return FunctionFlags(mask).String(), nil
	case UniverseProperty:
		return PropertyFlags(mask).String(), nil
	default:
		return "", fmt.Errorf("unknown flag universe %q", u)
	}
}
