package graph

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS nodes (
    id TEXT PRIMARY KEY,
    clicks REAL NOT NULL DEFAULT 0,
    sales REAL NOT NULL DEFAULT 0,
    count REAL NOT NULL DEFAULT 0,
    prob REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS edges (
    source TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    target TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    clicks REAL NOT NULL DEFAULT 0,
    sales REAL NOT NULL DEFAULT 0,
    count REAL NOT NULL DEFAULT 0,
    prob REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (source, target)
);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);
`

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// LoadSQLite reads a graph from the nodes and edges tables of a SQLite
// database. Rows are read in insertion order. A missing file is an error
// rather than a fresh empty database.
func LoadSQLite(ctx context.Context, path string) (*Graph, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open graph database: %w", err)
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	g := New()

	rows, err := db.QueryContext(ctx, `SELECT id, clicks, sales, count, prob FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	for rows.Next() {
		var id string
		var s Stats
		if err := rows.Scan(&id, &s.Clicks, &s.Sales, &s.Count, &s.Prob); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		if err := g.AddNode(id, s); err != nil {
			rows.Close()
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT source, target, clicks, sales, count, prob FROM edges ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a, b string
		var s Stats
		if err := rows.Scan(&a, &b, &s.Clicks, &s.Sales, &s.Count, &s.Prob); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		if err := g.AddEdge(a, b, s); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}

	return g, nil
}

// SaveSQLite replaces the contents of the database at path with g.
func (g *Graph) SaveSQLite(ctx context.Context, path string) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}

	for _, id := range g.order {
		s := g.nodes[id].Stats
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO nodes (id, clicks, sales, count, prob)
			VALUES (?, ?, ?, ?, ?)
		`, id, s.Clicks, s.Sales, s.Count, s.Prob); err != nil {
			return fmt.Errorf("failed to insert node %s: %w", id, err)
		}
	}
	for _, e := range g.edges {
		s := e.Stats
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO edges (source, target, clicks, sales, count, prob)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.A, e.B, s.Clicks, s.Sales, s.Count, s.Prob); err != nil {
			return fmt.Errorf("failed to insert edge %s-%s: %w", e.A, e.B, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit graph: %w", err)
	}
	return nil
}
