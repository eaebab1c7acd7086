package sketch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rfielding/fsc-synth/family"
)

const maze = `
name: maze
constraints: [0, 1]
holes:
  - name: A([wall],0)
    labels: [up, down]
  - name: M([wall],0)
    labels: ["0", "1"]
  - name: pick
    labels: [x, y, z]
`

func TestParseAndBuild(t *testing.T) {
	s, err := Parse([]byte(maze))
	require.NoError(t, err)
	assert.Equal(t, "maze", s.Name)
	assert.Equal(t, []int{0, 1}, s.Constraints)

	core, logs := observer.New(zap.DebugLevel)
	f, err := s.Build(WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 3, f.NumHoles())
	assert.Equal(t, int64(12), f.Size().Int64())
	assert.Equal(t, []int{0, 1}, f.Constraints())
	assert.Equal(t, []string{"x", "y", "z"}, f.HoleLabels(2))

	d, err := f.HoleDecision(1)
	require.NoError(t, err)
	assert.Equal(t, family.Decision{Kind: family.KindMemoryUpdate, Observation: "wall", Memory: 0}, d)
	assert.Equal(t, 1, logs.FilterMessage("sketch built").Len())
}

func TestParseJSON(t *testing.T) {
	s, err := Parse([]byte(`{"name": "j", "holes": [{"name": "h", "labels": ["a"]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "h", s.Holes[0].Name)
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"no name":          `holes: [{name: h, labels: [a]}]`,
		"no holes":         `name: s`,
		"empty labels":     `{name: s, holes: [{name: h, labels: []}]}`,
		"duplicate hole":   `{name: s, holes: [{name: h, labels: [a]}, {name: h, labels: [b]}]}`,
		"duplicate label":  `{name: s, holes: [{name: h, labels: [a, a]}]}`,
		"blank label":      `{name: s, holes: [{name: h, labels: [""]}]}`,
		"negative id":      `{name: s, constraints: [-1], holes: [{name: h, labels: [a]}]}`,
		"not a document":   `[1, 2`,
		"wrong field type": `{name: s, holes: 3}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.True(t, errors.Is(err, ErrInvalidSketch), "got %v", err)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := GenerateFSC("trip", []string{"o1", "o2"}, []string{"l", "r"}, 2)
	require.NoError(t, err)

	for _, file := range []string{"trip.yaml", "trip.json"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), file)
			require.NoError(t, s.Save(path))
			got, err := Load(path)
			require.NoError(t, err)
			if diff := cmp.Diff(s, got); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteJSONUsesFieldNames(t *testing.T) {
	s := &Sketch{Name: "w", Holes: []HoleSpec{{Name: "h", Labels: []string{"a"}}}}
	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf, FormatJSON))
	assert.JSONEq(t, `{"name": "w", "holes": [{"name": "h", "labels": ["a"]}]}`, buf.String())
	assert.Error(t, s.Write(&buf, "toml"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFromFamily(t *testing.T) {
	f, err := family.NewRoot([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}}, []int{4})
	require.NoError(t, err)
	narrowed, err := f.AssumeHoleOptionsCopy(0, []int{1})
	require.NoError(t, err)

	s := FromFamily("f", narrowed)
	want := &Sketch{
		Name:        "f",
		Constraints: []int{4},
		Holes:       []HoleSpec{{Name: "a", Labels: []string{"1", "2"}}, {Name: "b", Labels: []string{"3"}}},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("sketch (-want +got):\n%s", diff)
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("x/s.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("s.yml"))
	assert.Equal(t, FormatYAML, FormatOf("sketch"))
}

func TestNarrowed(t *testing.T) {
	f, err := family.NewRoot([]string{"a", "b"}, [][]string{{"1", "2", "3"}, {"4"}}, nil)
	require.NoError(t, err)
	narrowed, err := f.AssumeHoleOptionsCopy(0, []int{0, 2})
	require.NoError(t, err)

	s := Narrowed("n", narrowed)
	assert.Equal(t, []string{"1", "3"}, s.Holes[0].Labels)

	rebuilt, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, narrowed.String(), rebuilt.String())
}
