package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/fsc-synth/memory"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fscsynth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, memory.PolicyNone, cfg.MemoryPolicy())
	assert.Equal(t, memory.InferMaxMemory, cfg.Memory.MaxMemory)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
memory:
  policy: binaryTree
  max_memory: 6
enumerate:
  workers: 8
export:
  render: true
  format: svg
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, memory.PolicyBinaryTree, cfg.MemoryPolicy())
	assert.Equal(t, 6, cfg.Memory.MaxMemory)
	assert.Equal(t, 8, cfg.Enumerate.Workers)
	assert.True(t, cfg.Export.Render)
	assert.Equal(t, "svg", cfg.Export.Format)
	// untouched fields keep their defaults
	assert.Equal(t, "dot", cfg.Export.DotBinary)
	assert.Equal(t, uint64(33), cfg.Random.Seed)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FSCSYNTH_POLICY", "circular")
	t.Setenv("FSCSYNTH_MAX_MEMORY", "3")
	t.Setenv("FSCSYNTH_SEED", "7")
	t.Setenv("FSCSYNTH_LOG_LEVEL", "debug")
	t.Setenv("FSCSYNTH_EXPORT_ROUTE", "out/c.dot")

	cfg, err := Load(writeConfig(t, "memory:\n  policy: growing\n"))
	require.NoError(t, err)
	assert.Equal(t, memory.PolicyCircular, cfg.MemoryPolicy())
	assert.Equal(t, 3, cfg.Memory.MaxMemory)
	assert.Equal(t, uint64(7), cfg.Random.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "out/c.dot", cfg.Export.Route)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown policy", content: "memory:\n  policy: spiral\n"},
		{name: "max memory below -1", content: "memory:\n  max_memory: -2\n"},
		{name: "no workers", content: "enumerate:\n  workers: 0\n"},
		{name: "bad format", content: "export:\n  format: bmp\n"},
		{name: "bad level", content: "logging:\n  level: loud\n"},
		{name: "not yaml", content: "memory: [\n"},
		{name: "bad env number", env: map[string]string{"FSCSYNTH_MAX_MEMORY": "many"}},
		{name: "bad env seed", env: map[string]string{"FSCSYNTH_SEED": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Memory.Policy = string(memory.PolicyEvenUpOddDown)
	cfg.Metrics.Enabled = true
	path := filepath.Join(t.TempDir(), "nested", "fscsynth.yaml")
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}
