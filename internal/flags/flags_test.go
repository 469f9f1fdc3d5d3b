package flags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassFlags_String(t *testing.T) {
	tests := []struct {
		name string
		mask ClassFlags
		want string
	}{
		{"none", ClassNone, ""},
		{"single", ClassAbstract, "Abstract"},
		{"declared order not bit order", ClassNative | ClassAbstract, "Abstract | Native"},
		{"unlabeled bit dropped", ClassHasInstancedReference, ""},
		{"unlabeled bit mixed", ClassHasInstancedReference | ClassHidden, "Hidden"},
		{"high bit", ClassNewerVersionExists, "NewerVersionExists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mask.String())
		})
	}
}

func TestFunctionFlags_String(t *testing.T) {
	assert.Equal(t, "Final", FuncFinal.String())
	assert.Equal(t, "Static | Public | BlueprintCallable", (FuncBlueprintCallable | FuncPublic | FuncStatic).String())
	// 0x10 and 0x20 are unused by the engine.
	assert.Equal(t, "", FunctionFlags(0x30).String())
}

func TestPropertyFlags_String(t *testing.T) {
	assert.Equal(t, "ReturnParm", PropReturnParm.String())
	assert.Equal(t, "Parm | OutParm | ReferenceParm", (PropReferenceParm | PropOutParm | PropParm).String())
	assert.Equal(t, "SkipSerialization", PropSkipSerialization.String())
	assert.Equal(t, "", PropertyFlags(0x1000).String())
}

func TestEveryLabelOnceInDeclaredOrder(t *testing.T) {
	t.Run("class", func(t *testing.T) {
		var all ClassFlags
		names := make([]string, 0, len(ClassLabels))
		for _, l := range ClassLabels {
			all |= l.Bit
			names = append(names, l.Name)
		}
		assert.Equal(t, strings.Join(names, Separator), all.String())
		assert.Equal(t, strings.Join(names, Separator), ClassFlags(^uint32(0)).String())
	})

	t.Run("function", func(t *testing.T) {
		var all FunctionFlags
		names := make([]string, 0, len(FunctionLabels))
		for _, l := range FunctionLabels {
			all |= l.Bit
			names = append(names, l.Name)
		}
		assert.Equal(t, strings.Join(names, Separator), all.String())
	})

	t.Run("property", func(t *testing.T) {
		var all PropertyFlags
		names := make([]string, 0, len(PropertyLabels))
		for _, l := range PropertyLabels {
			all |= l.Bit
			names = append(names, l.Name)
		}
		assert.Equal(t, strings.Join(names, Separator), all.String())
	})
}

func TestLabelTablesHaveDistinctBits(t *testing.T) {
	seen := map[uint64]string{}
	for _, l := range PropertyLabels {
		bit := uint64(l.Bit)
		require.Equal(t, 0, popcount(bit)-1, "label %s must cover exactly one bit", l.Name)
		_, dup := seen[bit]
		require.False(t, dup, "bit %#x labelled twice", bit)
		seen[bit] = l.Name
	}
}

func popcount(v uint64) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}

func TestParseMask(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"0", 0, false},
		{"1024", 1024, false},
		{"0x400", 0x400, false},
		{" 0x8000_0000 ", 0x80000000, false},
		{"0b101", 5, false},
		{"", 0, true},
		{"nope", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMask(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatMask(t *testing.T) {
	text, err := FormatMask(UniverseProperty, uint64(PropEdit|PropBlueprintVisible))
	require.NoError(t, err)
	assert.Equal(t, "Edit | BlueprintVisible", text)

	text, err = FormatMask(UniverseClass, uint64(ClassInterface))
	require.NoError(t, err)
	assert.Equal(t, "Interface", text)

	_, err = FormatMask(UniverseFunction, 1<<40)
	assert.Error(t, err)

	_, err = FormatMask("struct", 1)
	assert.Error(t, err)
}
