package graph

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	require.NoError(t, g.AddNode("attr_0_val_1", Stats{Clicks: 5, Sales: 1, Count: 50, Prob: 0.5}))
	require.NoError(t, g.AddNode("attr_1_val_2", Stats{Clicks: 7, Sales: 2, Count: 70, Prob: 0.7}))
	require.NoError(t, g.AddNode("attr_2_val_3", Stats{Clicks: 9, Sales: 3, Count: 90, Prob: 0.9}))
	require.NoError(t, g.AddEdge("attr_0_val_1", "attr_1_val_2", Stats{Clicks: 2, Sales: 1, Count: 20, Prob: 2}))
	require.NoError(t, g.AddEdge("attr_1_val_2", "attr_2_val_3", Stats{Clicks: 3, Sales: 0, Count: 30, Prob: 3}))
	return g
}

func assertSameGraph(t *testing.T, want, got *Graph) {
	t.Helper()
	require.Equal(t, want.NodeIDs(), got.NodeIDs())
	for _, id := range want.NodeIDs() {
		wn, _ := want.Node(id)
		gn, ok := got.Node(id)
		require.True(t, ok, id)
		assert.Equal(t, wn.Stats, gn.Stats, id)
	}
	require.Equal(t, want.EdgeCount(), got.EdgeCount())
	for i, we := range want.Edges() {
		ge := got.Edges()[i]
		assert.Equal(t, *we, *ge)
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	require.NoError(t, g.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "id: attr_0_val_1")

	got, err := ReadYAML(&buf)
	require.NoError(t, err)
	assertSameGraph(t, g, got)
}

func TestReadYAML_Errors(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("nodes:\n  - id: nope\n"))
	require.ErrorIs(t, err, ErrMalformedNodeID)

	_, err = ReadYAML(strings.NewReader("nodes:\n  - id: attr_0_val_0\nedges:\n  - {from: attr_0_val_0, to: attr_1_val_0}\n"))
	require.ErrorIs(t, err, ErrNodeNotFound)

	g, err := ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph.db")
	g := sampleGraph(t)

	require.NoError(t, g.SaveSQLite(ctx, path))
	got, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	assertSameGraph(t, g, got)

	// Saving again replaces the previous contents.
	small := New()
	require.NoError(t, small.AddNode("attr_5_val_5", Stats{Count: 1}))
	require.NoError(t, small.SaveSQLite(ctx, path))
	got, err = LoadSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"attr_5_val_5"}, got.NodeIDs())
	assert.Equal(t, 0, got.EdgeCount())
}

func TestLoadSQLite_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	_, err := Load(context.Background(), "", path)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "loading must not create the database")
}

func TestLoadSave_FormatFromPath(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	g := sampleGraph(t)

	for _, name := range []string{"g.yaml", "g.db"} {
		path := filepath.Join(dir, name)
		require.NoError(t, g.Save(ctx, "", path))
		got, err := Load(ctx, "", path)
		require.NoError(t, err, name)
		assertSameGraph(t, g, got)
	}

	assert.Equal(t, FormatSQLite, FormatFromPath("x.SQLITE3"))
	assert.Equal(t, FormatYAML, FormatFromPath("x.yml"))

	_, err := Load(ctx, "csv", "x.csv")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExportDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleGraph(t).ExportDOT(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "graph Attributes {"))
	assert.Contains(t, out, `"attr_0_val_1" -- "attr_1_val_2" [label="0.100"];`)
	assert.Contains(t, out, `clicks=5 sales=1 count=50`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}
