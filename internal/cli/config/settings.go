package config

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidPattern is returned for patterns that fail to compile or carry
// an unknown type.
var ErrInvalidPattern = errors.New("invalid name pattern")

// PatternType says what a matching pattern does.
type PatternType string

const (
	Include PatternType = "include"
	Exclude PatternType = "exclude"
)

// NamePattern is a regular expression matched against the whole name.
type NamePattern struct {
	Pattern string      `mapstructure:"pattern" yaml:"pattern"`
	Type    PatternType `mapstructure:"type" yaml:"type"`

	re *regexp.Regexp
}

// Compile validates the pattern. IsMatch compiles on demand, so calling
// Compile first only moves the error earlier.
func (p *NamePattern) Compile() error {
	switch p.Type {
	case Include, Exclude:
	default:
		return fmt.Errorf("%w: %q has type %q, want include or exclude", ErrInvalidPattern, p.Pattern, p.Type)
	}
	re, err := regexp.Compile("^(?:" + p.Pattern + ")$")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	p.re = re
	return nil
}

func (p *NamePattern) matches(name string) bool {
	if p.re == nil {
		if err := p.Compile(); err != nil {
			return false
		}
	}
	return p.re.MatchString(name)
}

// Patterns is an ordered pattern list.
type Patterns []NamePattern

// IsMatch reports whether name is admitted. The last pattern that matches
// decides. When nothing matches, the name is admitted only if the list has
// no include patterns.
func (ps Patterns) IsMatch(name string) bool {
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].matches(name) {
			return ps[i].Type == Include
		}
	}
	for _, p := range ps {
		if p.Type == Include {
			return false
		}
	}
	return true
}

// Compile compiles every pattern.
func (ps Patterns) Compile() error {
	for i := range ps {
		if err := ps[i].Compile(); err != nil {
			return err
		}
	}
	return nil
}

// ModuleGeneration narrows the types exported from one module.
type ModuleGeneration struct {
	Name  string   `mapstructure:"name" yaml:"name"`
	Types Patterns `mapstructure:"types" yaml:"types"`
}

// ModuleGenerationSet selects modules and, per module, types.
type ModuleGenerationSet struct {
	ModulePatterns  Patterns           `mapstructure:"module_patterns" yaml:"module_patterns"`
	DetailedModules []ModuleGeneration `mapstructure:"detailed_modules" yaml:"detailed_modules"`
}

// Compile compiles every pattern in the set.
func (s *ModuleGenerationSet) Compile() error {
	if err := s.ModulePatterns.Compile(); err != nil {
		return err
	}
	for i := range s.DetailedModules {
		m := &s.DetailedModules[i]
		if m.Name == "" {
			return fmt.Errorf("%w: detailed module without a name", ErrInvalidPattern)
		}
		if err := m.Types.Compile(); err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
	}
	return nil
}

// IncludesModule reports whether the module patterns admit name.
func (s *ModuleGenerationSet) IncludesModule(name string) bool {
	return s.ModulePatterns.IsMatch(name)
}

// IncludesType reports whether typeName may be exported from module. Modules
// without detailed settings export everything.
func (s *ModuleGenerationSet) IncludesType(module, typeName string) bool {
	for i := range s.DetailedModules {
		if s.DetailedModules[i].Name == module {
			return s.DetailedModules[i].Types.IsMatch(typeName)
		}
	}
	return true
}
