package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsCommand(t *testing.T) {
	out, _, err := run(t, "flags", "class", "0x4001")
	require.NoError(t, err)
	assert.Contains(t, out, "Mask:    0x4001\n")
	assert.Contains(t, out, "Decimal: 16385\n")
	assert.Contains(t, out, "Flags:   Abstract | Interface\n")

	out, _, err = run(t, "flags", "property", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "(none)")

	_, _, err = run(t, "flags", "function", "0x100000000")
	assert.Error(t, err)

	_, _, err = run(t, "flags", "class", "nope")
	assert.Error(t, err)
}
