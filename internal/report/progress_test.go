package report

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/25smoking/aggsynth/internal/core"
	"github.com/25smoking/aggsynth/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, "Generating data")

	bar.Start(3)
	for i := 0; i < 3; i++ {
		bar.Advance(1)
	}
	bar.Finish()

	out := buf.String()
	assert.Contains(t, out, "Generating data")
	assert.Contains(t, out, "3/3")
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, "rows")
	bar.Start(0)
	bar.Advance(1)
	bar.Finish()
	assert.Empty(t, buf.String())
}

func TestProgressBar_BacksWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	src := &staticSource{entry: core.Entry{Features: []float64{1, 2}, Targets: []float64{0.5, 0.25}}}
	var buf bytes.Buffer

	w := dataset.NewWriter(src, 2, dataset.WithProgress(NewProgressBar(&buf, "Generating data")))
	res, err := w.GenerateData(context.Background(), 4, path, false)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Rows)
	assert.Contains(t, buf.String(), "4/4")
}

type staticSource struct{ entry core.Entry }

func (s *staticSource) GenerateEntry(context.Context) (core.Entry, error) { return s.entry, nil }

func TestConsole_PrintResult(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.PrintResult(dataset.Result{Path: "data.csv", Rows: 10, Duration: 2 * time.Second},
		core.Counters{Entries: 10, Attempts: 20, DeadEnds: 10})
	assert.Contains(t, buf.String(), "data.csv: 10 rows in 2.00s")
	assert.Contains(t, buf.String(), "dead ends: 10 (50.0%)")
	assert.NotContains(t, buf.String(), "\033[")

	buf.Reset()
	c.PrintResult(dataset.Result{Path: "data.csv", Skipped: true}, core.Counters{})
	assert.Contains(t, buf.String(), "skipped")
}
