package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/homeheat/internal/model"
)

// DefaultPath is where the crawl writes its snapshot.
const DefaultPath = "data/data.db"

// Store is an open snapshot file.
type Store struct {
	db   *sql.DB
	path string
}

// Options configures Open.
type Options struct {
	// CreateIfNotExists creates the file and its directory when missing.
	// When false, a missing file yields ErrNotFound.
	CreateIfNotExists bool

	// EnableWAL switches the journal to write-ahead logging.
	EnableWAL bool
}

// WriteOptions returns the options used when saving a crawl.
func WriteOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ReadOptions returns the options used when loading a snapshot.
func ReadOptions() Options {
	return Options{}
}

// Open opens the snapshot file at path.
func Open(path string, opts Options) (*Store, error) {
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check snapshot path: %w", err)
		}
	}

	dsn := path + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = path + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, path: path}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrCorrupt, err)
		}
	}

	if opts.CreateIfNotExists {
		if err := s.createTables(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: failed to create tables: %w", ErrCorrupt, err)
		}
	}

	return s, nil
}

// Path returns the file path of the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshot_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		run_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		query_address TEXT NOT NULL,
		query_city TEXT NOT NULL,
		query_state TEXT NOT NULL,
		min_lat REAL NOT NULL,
		max_lat REAL NOT NULL,
		min_lon REAL NOT NULL,
		max_lon REAL NOT NULL,
		max_size INTEGER NOT NULL,
		max_iterations INTEGER NOT NULL,
		reason TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		seed_count INTEGER NOT NULL,
		record_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		digest TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL UNIQUE,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		value REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS edges (
		from_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		to_id TEXT NOT NULL,
		PRIMARY KEY (from_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_edges_to ON edges(to_id);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Save replaces the stored snapshot with snap in one transaction.
func (s *Store) Save(ctx context.Context, snap *model.Snapshot) (err error) {
	if snap == nil || snap.Graph == nil {
		return ErrNilSnapshot
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"snapshot_meta", "records", "edges"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	g := snap.Graph
	records := g.RecordsInOrder()

	recStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (id, position, latitude, longitude, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer recStmt.Close()

	for i, r := range records {
		if _, err = recStmt.ExecContext(ctx, r.ID, i, r.Latitude, r.Longitude, r.Value); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO edges (from_id, position, to_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, from := range sortedKeys(g.Adjacency) {
		for i, to := range g.Adjacency[from] {
			if _, err = edgeStmt.ExecContext(ctx, from, i, to); err != nil {
				return fmt.Errorf("failed to insert edge %s -> %s: %w", from, to, err)
			}
		}
	}

	m := snap.Metadata
	_, err = tx.ExecContext(ctx, `
	INSERT INTO snapshot_meta (
		id, run_id, created_at, query_address, query_city, query_state,
		min_lat, max_lat, min_lon, max_lon, max_size, max_iterations,
		reason, iterations, seed_count, record_count, edge_count, digest
	) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.CreatedAt.UTC().Format(time.RFC3339Nano),
		m.Query.Address, m.Query.City, m.Query.State,
		m.Bounds.MinLat, m.Bounds.MaxLat, m.Bounds.MinLon, m.Bounds.MaxLon,
		m.MaxSize, m.MaxIterations, m.Reason.String(), m.Iterations, m.SeedCount,
		len(records), g.EdgeCount(), Digest(snap),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot metadata: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot and verifies it.
func (s *Store) Load(ctx context.Context) (*model.Snapshot, error) {
	var m model.Metadata
	var createdAt, reason, digest string
	var recordCount, edgeCount int

	err := s.db.QueryRowContext(ctx, `
	SELECT run_id, created_at, query_address, query_city, query_state,
		min_lat, max_lat, min_lon, max_lon, max_size, max_iterations,
		reason, iterations, seed_count, record_count, edge_count, digest
	FROM snapshot_meta WHERE id = 1`).Scan(
		&m.RunID, &createdAt, &m.Query.Address, &m.Query.City, &m.Query.State,
		&m.Bounds.MinLat, &m.Bounds.MaxLat, &m.Bounds.MinLon, &m.Bounds.MaxLon,
		&m.MaxSize, &m.MaxIterations, &reason, &m.Iterations, &m.SeedCount,
		&recordCount, &edgeCount, &digest,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no metadata row", ErrCorrupt)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read metadata: %w", ErrCorrupt, err)
	}

	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("%w: invalid created_at %q", ErrCorrupt, createdAt)
	}
	if m.Reason, err = model.ParseTerminationReason(reason); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	g, err := s.loadGraph(ctx)
	if err != nil {
		return nil, err
	}

	if g.Len() != recordCount || g.EdgeCount() != edgeCount {
		return nil, fmt.Errorf("%w: expected %d records and %d edges, found %d and %d",
			ErrCorrupt, recordCount, edgeCount, g.Len(), g.EdgeCount())
	}

	snap := &model.Snapshot{Metadata: m, Graph: g}
	if got := Digest(snap); got != digest {
		return nil, fmt.Errorf("%w: digest mismatch", ErrCorrupt)
	}

	return snap, nil
}

// loadGraph reads records and edges back into a Graph.
func (s *Store) loadGraph(ctx context.Context) (*model.Graph, error) {
	g := model.NewGraph()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, latitude, longitude, value FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query records: %w", ErrCorrupt, err)
	}
	defer rows.Close()

	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID, &r.Latitude, &r.Longitude, &r.Value); err != nil {
			return nil, fmt.Errorf("%w: failed to scan record: %w", ErrCorrupt, err)
		}
		g.Add(r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	edges, err := s.db.QueryContext(ctx,
		`SELECT from_id, to_id FROM edges ORDER BY from_id, position`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query edges: %w", ErrCorrupt, err)
	}
	defer edges.Close()

	for edges.Next() {
		var from, to string
		if err := edges.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("%w: failed to scan edge: %w", ErrCorrupt, err)
		}
		if !g.Has(from) {
			return nil, fmt.Errorf("%w: edge from unknown record %s", ErrCorrupt, from)
		}
		g.AddEdge(from, to)
	}
	if err := edges.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return g, nil
}

// Write saves snap to a new or existing file at path.
func Write(ctx context.Context, path string, snap *model.Snapshot) error {
	s, err := Open(path, WriteOptions())
	if err != nil {
		return err
	}
	if err := s.Save(ctx, snap); err != nil {
		_ = s.Close()
		return err
	}
	return s.Close()
}

// Read loads the snapshot stored at path.
func Read(ctx context.Context, path string) (*model.Snapshot, error) {
	s, err := Open(path, ReadOptions())
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return s.Load(ctx)
}
