package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/mapfile"
	"github.com/DrSkyle/roadmap/pkg/pathfinder"
	"github.com/DrSkyle/roadmap/pkg/snapshot"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func seedRecord(t *testing.T) (snapshot.Record, *graph.MemoryStore) {
	t.Helper()
	s := graph.NewMemoryStore()
	require.NoError(t, graph.Seed(s))
	return snapshot.Capture(s), s
}

func TestExport_Golden(t *testing.T) {
	rec, _ := seedRecord(t)
	g := goldie.New(t)

	for _, f := range []Format{FormatJSON, FormatCSV} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Export(&buf, rec, f))
			g.Assert(t, "seed_"+string(f), buf.Bytes())
		})
	}
}

func TestExport_JSONIsLoadable(t *testing.T) {
	rec, _ := seedRecord(t)
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, rec, FormatJSON))

	back, ok := snapshot.Decode(buf.Bytes())
	require.True(t, ok)
	assert.Equal(t, rec, back)
}

func TestExport_YAML(t *testing.T) {
	rec, _ := seedRecord(t)
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, rec, FormatYAML))

	var back snapshot.Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, rec, back)
	assert.Contains(t, buf.String(), "nextId: 12")
}

func TestExport_HCL(t *testing.T) {
	rec, s := seedRecord(t)
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, rec, FormatHCL))
	assert.Contains(t, buf.String(), `city "A"`)

	m, err := mapfile.Parse("export.hcl", buf.Bytes(), mapfile.Canvas{Width: 1000, Height: 700})
	require.NoError(t, err)
	assert.Len(t, m.Cities, s.NodeCount())
	assert.Len(t, m.Roads, s.EdgeCount())
}

func TestWriteFile(t *testing.T) {
	rec, _ := seedRecord(t)
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFile(dir, rec, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "city-road-map.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "6,A,B,8\n")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, "city-road-map.json", FileName(FormatJSON))
}

func TestDescribe(t *testing.T) {
	_, s := seedRecord(t)
	a, _ := s.FindNode("A")
	c, _ := s.FindNode("C")

	route := Describe(s, a.ID, pathfinder.Find(s, a.ID, c.ID))
	assert.Equal(t, []string{"A", "B", "C"}, route.Cities)
	assert.Equal(t, "A → B → C (14)", route.String())

	island := s.AddNode("Island", 0, 0)
	assert.Equal(t, "no path", Describe(s, a.ID, pathfinder.Find(s, a.ID, island)).String())
}
