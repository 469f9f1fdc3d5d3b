package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Module", "Types", "Kind"}, &TableOptions{NoColor: true, RightAlign: []int{1}})
	table.AddRow("CoreUObject", "2", "EngineRuntime")
	table.AddRow("Game", "14", "GameRuntime")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Module       Types  Kind         ", lines[0])
	assert.Equal(t, "───────────  ─────  ─────────────", lines[1])
	assert.Equal(t, "CoreUObject      2  EngineRuntime", lines[2])
	assert.Equal(t, "Game            14  GameRuntime", lines[3])
	assert.Equal(t, 2, table.Len())
}

func TestTable_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, nil, nil).Render()
	assert.Empty(t, buf.String())
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Kind", "UObject")
	kv.AddRow("CppName", "AFoo")
	kv.Render()

	assert.Equal(t, "Kind:    UObject\nCppName: AFoo\n", buf.String())
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	s := NewSection(&buf, "Properties", true)
	s.Render()
	assert.Empty(t, buf.String())

	s.AddLine("%s %s", "int32", "X")
	s.Render()
	assert.Equal(t, "Properties\n  int32 X\n\n", buf.String())
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Game.Foo", true)
	assert.Equal(t, "Game.Foo\n────────\n", buf.String())
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"Actor", "Pawn", "Vector", "Factor"}

	assert.Equal(t, []string{"Actor", "Factor", "Vector"}, FindSimilar("Actr", candidates, nil))
	assert.Equal(t, []string{"Actor", "Factor"}, FindSimilar("actor", candidates, &FuzzyMatchOptions{MaxDistance: 1}))
	assert.Equal(t, []string{"Actor"}, FindSimilar("ACTOR", []string{"Actor"}, nil))
	assert.Empty(t, FindSimilar("ACTOR", []string{"Actor"}, &FuzzyMatchOptions{CaseSensitive: true, MaxDistance: 2}))
	assert.Empty(t, FindSimilar("Zzzzzzzz", candidates, nil))
	assert.Len(t, FindSimilar("a", []string{"b", "c", "d", "e"}, &FuzzyMatchOptions{MaxSuggestions: 2}), 2)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 3, LevenshteinDistance("saturday", "sunday"))
	assert.Equal(t, 4, LevenshteinDistance("", "abcd"))
	assert.Equal(t, 1, LevenshteinDistance("über", "uber"))
}

func TestFormatError(t *testing.T) {
	out := TypeNotFoundError("Actr", []string{"Actor"}, true)
	assert.Contains(t, out, "✗ TYPE NOT FOUND\n")
	assert.Contains(t, out, "   Cannot find type 'Actr'.\n")
	assert.Contains(t, out, "Did you mean: Actor?")
	assert.Contains(t, out, "→ List types: nativebinder introspect types")

	out = SnapshotError("snap.yaml", errors.New("boom"), true)
	assert.Contains(t, out, "SNAPSHOT ERROR")
	assert.Contains(t, out, "   boom\n")

	assert.Equal(t, "! careful\n", Warning("careful", true))
	assert.Contains(t, ConfigError("bad workers", true), "nativebinder init")
	assert.Equal(t, "✓ done", FormatSuccess("done", true))
}

func TestWithSpinner(t *testing.T) {
	var buf bytes.Buffer
	err := WithSpinner(&buf, "Exporting", true, func() error {
		time.Sleep(20 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(buf.String(), "✓ Exporting\n"))

	buf.Reset()
	err = WithSpinner(&buf, "Exporting", true, func() error { return errors.New("boom") })
	assert.EqualError(t, err, "boom")
	assert.Contains(t, buf.String(), "✗ Exporting failed")
}

func TestSpinner_StopTwice(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, SpinnerOptions{Message: "x", NoColor: true, Interval: time.Millisecond})
	s.Start()
	s.UpdateMessage("y")
	s.Stop()
	s.Stop()
}
