package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatterns_LastMatchWins(t *testing.T) {
	ps := Patterns{
		{Pattern: ".*", Type: Include},
		{Pattern: "Editor.*", Type: Exclude},
		{Pattern: "EditorStyle", Type: Include},
	}

	assert.True(t, ps.IsMatch("Engine"))
	assert.False(t, ps.IsMatch("EditorFramework"))
	assert.True(t, ps.IsMatch("EditorStyle"))
}

func TestPatterns_NoMatch(t *testing.T) {
	tests := []struct {
		name string
		ps   Patterns
		want bool
	}{
		{"empty list admits", nil, true},
		{"exclude only admits the rest", Patterns{{Pattern: "Tests", Type: Exclude}}, true},
		{"include list rejects the rest", Patterns{{Pattern: "Game", Type: Include}}, false},
		{"mixed rejects the rest", Patterns{{Pattern: "Tests", Type: Exclude}, {Pattern: "Game", Type: Include}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ps.IsMatch("Other"))
		})
	}
}

func TestPatterns_WholeName(t *testing.T) {
	ps := Patterns{{Pattern: "Game", Type: Include}}
	assert.True(t, ps.IsMatch("Game"))
	assert.False(t, ps.IsMatch("GameTests"))
	assert.False(t, ps.IsMatch("MyGame"))
}

func TestNamePattern_Compile(t *testing.T) {
	p := NamePattern{Pattern: "[", Type: Include}
	assert.ErrorIs(t, p.Compile(), ErrInvalidPattern)
	assert.False(t, Patterns{p}.IsMatch("["))

	p = NamePattern{Pattern: "A", Type: "sometimes"}
	assert.ErrorIs(t, p.Compile(), ErrInvalidPattern)

	p = NamePattern{Pattern: "A|B", Type: Exclude}
	require.NoError(t, p.Compile())
	assert.True(t, p.matches("B"))
}

func TestModuleGenerationSet(t *testing.T) {
	set := ModuleGenerationSet{
		ModulePatterns: Patterns{{Pattern: "Shooter.*", Type: Include}},
		DetailedModules: []ModuleGeneration{
			{Name: "Shooter", Types: Patterns{{Pattern: "Test.*", Type: Exclude}}},
			{Name: "ShooterUI", Types: Patterns{{Pattern: "Widget.*", Type: Include}}},
		},
	}
	require.NoError(t, set.Compile())

	assert.True(t, set.IncludesModule("ShooterUI"))
	assert.False(t, set.IncludesModule("Engine"))

	assert.True(t, set.IncludesType("Shooter", "Weapon"))
	assert.False(t, set.IncludesType("Shooter", "TestDummy"))
	assert.True(t, set.IncludesType("ShooterUI", "WidgetHud"))
	assert.False(t, set.IncludesType("ShooterUI", "Weapon"))
	assert.True(t, set.IncludesType("Elsewhere", "Anything"))
}
