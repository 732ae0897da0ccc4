package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/25smoking/aggsynth/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	res := Result{Path: path, Rows: 12, Duration: 1500 * time.Millisecond}
	counters := core.Counters{Entries: 12, Attempts: 15, DeadEnds: 3}

	m := NewManifest(res, 3, counters)
	m.Seed = 42
	m.Normalizer = "ratio"
	require.NoError(t, SaveManifest(m))

	got, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, got.Dataset)
	assert.Equal(t, 12, got.Rows)
	assert.Equal(t, Header(3), got.Header)
	assert.Equal(t, counters, got.Counters)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, "1.5s", got.Duration)
	assert.NotEmpty(t, got.Host.Arch)
	assert.Positive(t, got.Host.CPUs)
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "none.csv"))
	require.Error(t, err)
}
