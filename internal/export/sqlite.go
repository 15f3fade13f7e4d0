package export

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/matsen/citegraph/internal/graph"
	_ "modernc.org/sqlite"
)

// Store persists a graph to SQLite so queries can run without
// re-executing the pipeline.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the graph database at the given path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS nodes (
			key TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			label TEXT NOT NULL,
			record TEXT
		);

		CREATE TABLE IF NOT EXISTS edges (
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			relationship TEXT NOT NULL,
			PRIMARY KEY (source, target, relationship)
		);

		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);
		CREATE INDEX IF NOT EXISTS idx_nodes_kind ON nodes(kind);
	`
	_, err := db.Exec(schema)
	return err
}

// WriteGraph replaces the stored graph with g.
func (s *Store) WriteGraph(g *graph.Graph) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM nodes"); err != nil {
		return fmt.Errorf("clearing nodes table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM edges"); err != nil {
		return fmt.Errorf("clearing edges table: %w", err)
	}

	nodeStmt, err := tx.Prepare(`INSERT INTO nodes (key, kind, label, record) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing nodes insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, node := range g.Nodes() {
		recordJSON, err := json.Marshal(node.Record)
		if err != nil {
			return fmt.Errorf("marshaling record for %s: %w", node.Key, err)
		}
		if _, err := nodeStmt.Exec(node.Key, node.Kind, node.Label, string(recordJSON)); err != nil {
			return fmt.Errorf("inserting node %s: %w", node.Key, err)
		}
	}

	edgeStmt, err := tx.Prepare(`INSERT INTO edges (source, target, relationship) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing edges insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range g.Edges() {
		if _, err := edgeStmt.Exec(e.Source, e.Target, e.Relationship); err != nil {
			return fmt.Errorf("inserting edge %s -> %s: %w", e.Source, e.Target, err)
		}
	}

	return tx.Commit()
}

// LoadGraph reads the stored nodes and edges back into a graph. Node
// records are not rehydrated; the loaded graph answers queries over
// keys, kinds, and labels.
func (s *Store) LoadGraph() (*graph.Graph, error) {
	g := graph.New()

	rows, err := s.db.Query(`SELECT kind, label FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("reading nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, label string
		if err := rows.Scan(&kind, &label); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		g.AddNode(kind, label, nil)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading nodes: %w", err)
	}

	edgeRows, err := s.db.Query(`SELECT source, target, relationship FROM edges ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("reading edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var source, target, relationship string
		if err := edgeRows.Scan(&source, &target, &relationship); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		g.AddEdge(source, target, relationship)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("reading edges: %w", err)
	}

	return g, nil
}
