package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/fsc-synth/sketch"
)

// run executes the CLI with a config file that does not exist, so defaults
// and FSCSYNTH_* overrides apply.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FSCSYNTH_LOG_LEVEL", "error")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// genSketch writes a two-observation, two-action controller sketch.
func genSketch(t *testing.T, memory string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fsc.yaml")
	_, err := run(t, "gen", "--name", "fsc", "--observations", "o1,o2", "--actions", "l,r", "--memory", memory, "-o", path)
	require.NoError(t, err)
	return path
}

func TestGen(t *testing.T) {
	path := genSketch(t, "2")
	s, err := sketch.Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Holes, 8)
	assert.Equal(t, "A([o1],0)", s.Holes[0].Name)

	out, err := run(t, "gen", "--observations", "o", "--actions", "a", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "M([o],0)"`)

	_, err = run(t, "gen", "--actions", "a")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := genSketch(t, "3")
	out, err := run(t, "inspect", path, "--policy", "circular")
	require.NoError(t, err)

	assert.Contains(t, out, "fsc\n")
	assert.Contains(t, out, "A=6 M=6")
	// 2^6 * 3^6
	assert.Contains(t, out, "size:        46656")
	assert.Contains(t, out, "restricted:  64")
	assert.Contains(t, out, "M([o1],2)")
	assert.NotContains(t, out, "\x1b[")
}

func TestRestrict(t *testing.T) {
	path := genSketch(t, "3")
	out, err := run(t, "restrict", path, "--policy", "growing")
	require.NoError(t, err)
	assert.Contains(t, out, "policy growing: 46656 -> ")
	assert.Contains(t, out, "M([o1],0): {1,2}")
	assert.Contains(t, out, "M([o2],2)=2")

	narrowed := filepath.Join(t.TempDir(), "narrow.yaml")
	_, err = run(t, "restrict", path, "--policy", "circular", "-o", narrowed)
	require.NoError(t, err)
	s, err := sketch.Load(narrowed)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, s.Holes[1].Labels)

	_, err = run(t, "restrict", path, "--policy", "spiral")
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	path := genSketch(t, "2")
	dir := t.TempDir()
	out, err := run(t, "split", path, "--hole", "A([o1],0)", "--group", "l", "--group", "r", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[0] size 128, depth 1: A([o1],0)=l")
	assert.Contains(t, out, "[1] size 128, depth 1: A([o1],0)=r")
	assert.FileExists(t, filepath.Join(dir, "fsc-1.yaml"))

	out, err = run(t, "split", path, "--hole", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "M([o1],0)=1")

	_, err = run(t, "split", path, "--hole", "A([o1],0)", "--group", "l,r", "--group", "r")
	assert.Error(t, err)
	_, err = run(t, "split", path, "--hole", "nope")
	assert.ErrorIs(t, err, errUnknownHole)
}

func TestEnumerate(t *testing.T) {
	path := genSketch(t, "1")
	out, err := run(t, "enumerate", path, "--workers", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	// ties go to the first hole, so the output is in odometer order
	assert.Equal(t, []string{
		"A([o1],0)=l, M([o1],0)=0, A([o2],0)=l, M([o2],0)=0",
		"A([o1],0)=l, M([o1],0)=0, A([o2],0)=r, M([o2],0)=0",
		"A([o1],0)=r, M([o1],0)=0, A([o2],0)=l, M([o2],0)=0",
		"A([o1],0)=r, M([o1],0)=0, A([o2],0)=r, M([o2],0)=0",
	}, lines)

	out, err = run(t, "enumerate", path, "--limit", "3", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "| fscsynth_assignments_enumerated_total | counter |  | 3 |")
	assert.Contains(t, out, "| fscsynth_splits_total | counter |  | 1 |")
}

func TestRender(t *testing.T) {
	path := genSketch(t, "2")
	route := filepath.Join(t.TempDir(), "graph", "fsc.dot")
	out, err := run(t, "render", path, "--policy", "circular", "--route", route, "--legend", "--mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+route)
	assert.Contains(t, out, "| Symbol | Observation |")
	assert.Contains(t, out, "stateDiagram-v2")
	// any picks l everywhere; circular sends 0 to 1 and 1 to 0
	assert.Contains(t, out, "m0 --> m1: a,b/a")
	assert.Contains(t, out, "m1 --> m0: a,b/a")

	dot, err := os.ReadFile(route)
	require.NoError(t, err)
	assert.Contains(t, string(dot), `"0" -> "1" [label="a,b/a"];`)

	_, err = run(t, "render", path, "--pick", "best", "--route", route)
	assert.Error(t, err)

	out, err = run(t, "render", path, "--pick", "random", "--route", route)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+route)
}

func TestRenderRandomFollowsSeed(t *testing.T) {
	path := genSketch(t, "3")
	dir := t.TempDir()
	t.Setenv("FSCSYNTH_SEED", "5")
	var dots []string
	for _, name := range []string{"a.dot", "b.dot"} {
		route := filepath.Join(dir, name)
		_, err := run(t, "render", path, "--pick", "random", "--route", route)
		require.NoError(t, err)
		dot, err := os.ReadFile(route)
		require.NoError(t, err)
		dots = append(dots, string(dot))
	}
	assert.Equal(t, dots[0], dots[1])
}

func TestPolicies(t *testing.T) {
	out, err := run(t, "policies")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 14)
	assert.Equal(t, "none", lines[0])
}
