package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotFixture = `
modules:
  - name: CoreUObject
    type: EngineRuntime
    classes:
      - name: Object
  - name: Engine
    type: EngineRuntime
    classes:
      - name: Actor
        prefix: A
        super: CoreUObject.Object
  - name: Game
    type: GameRuntime
    classes:
      - name: Foo
        prefix: A
        super: Engine.Actor
        properties:
          - {name: X, cppType: int32, class: IntProperty, offset: 544}
          - {name: Partner, cppType: AFoo*, class: ObjectProperty, propertyClass: Foo}
        functions:
          - name: DoThing
            flags: 0x20400
            params:
              - {name: In, cppType: float, class: FloatProperty, flags: 0x80}
`

const configFixture = `output_path: out
snapshot: reflection.yaml
log_level: error
`

// newProject writes a config and a snapshot into a temporary directory and
// returns the config path.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reflection.yaml"), []byte(snapshotFixture), 0o644))
	path := filepath.Join(dir, "nativebinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configFixture), 0o644))
	return path
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return execute(t, context.Background(), args...)
}

func exportProject(t *testing.T) string {
	t.Helper()
	cfgPath := newProject(t)
	_, _, err := run(t, "--config", cfgPath, "export")
	require.NoError(t, err)
	return cfgPath
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "nativebinder", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"version", "export", "introspect", "flags", "watch", "init"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	for _, name := range []string{"config", "verbose", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	t.Cleanup(func() { Version, GitCommit = "dev", "unknown" })

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nativebinder version: 1.0.0-test")
	assert.Contains(t, out, "Git commit: abc123")
	assert.Contains(t, out, "Go version: go")
}
