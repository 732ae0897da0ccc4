package graph

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// ErrUnknownFormat is returned for a storage format other than yaml or sqlite.
var ErrUnknownFormat = errors.New("graph: unknown storage format")

// FormatFromPath guesses the storage format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatYAML
	}
}

// Load reads a graph in the given format. An empty format is inferred from path.
func Load(ctx context.Context, format, path string) (*Graph, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	switch format {
	case FormatYAML:
		return LoadYAML(path)
	case FormatSQLite:
		return LoadSQLite(ctx, path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes g in the given format. An empty format is inferred from path.
func (g *Graph) Save(ctx context.Context, format, path string) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	switch format {
	case FormatYAML:
		return g.SaveYAML(path)
	case FormatSQLite:
		return g.SaveSQLite(ctx, path)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
