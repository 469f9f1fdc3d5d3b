package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCommand_InitialExport(t *testing.T) {
	cfgPath := newProject(t)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	out, _, err := execute(t, ctx, "--config", cfgPath, "watch", "--debounce", "10ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Watching ")
	assert.Contains(t, out, "✓ exported ")
	assert.FileExists(t, filepath.Join(filepath.Dir(cfgPath), "out", "manifest.json"))
}
