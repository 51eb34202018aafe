// Package runstore keeps a durable registry of gridsearch dispatches in a
// local SQLite database, so earlier runs can be listed and located after the
// fact. Recording is best-effort from the caller's point of view: a registry
// failure must never fail a dispatch.
package runstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Dispatch is one recorded write-gridsearch-jobs invocation.
type Dispatch struct {
	ID          string
	GSName      string
	ClusterType string
	JobCount    int
	SaveDir     string
	CreatedAt   time.Time
}

// Store wraps the registry database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the registry database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	const createDispatches = `
CREATE TABLE IF NOT EXISTS dispatches (
  id           TEXT PRIMARY KEY,
  gs_name      TEXT,
  cluster_type TEXT,
  job_count    INTEGER,
  save_dir     TEXT,
  created_at   TEXT
);`
	_, err := db.Exec(createDispatches)
	return err
}

// RecordDispatch inserts one dispatch row, assigning an ID and timestamp
// when the caller left them zero.
func (s *Store) RecordDispatch(ctx context.Context, d *Dispatch) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dispatches (id, gs_name, cluster_type, job_count, save_dir, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.GSName, d.ClusterType, d.JobCount, d.SaveDir, d.CreatedAt.Format(time.RFC3339))
	return err
}

// ListDispatches returns all recorded dispatches, most recent first.
func (s *Store) ListDispatches(ctx context.Context) ([]Dispatch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, gs_name, cluster_type, job_count, save_dir, created_at
		 FROM dispatches ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dispatches []Dispatch
	for rows.Next() {
		var (
			d       Dispatch
			created string
		)
		if err := rows.Scan(&d.ID, &d.GSName, &d.ClusterType, &d.JobCount, &d.SaveDir, &created); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			d.CreatedAt = t
		}
		dispatches = append(dispatches, d)
	}
	return dispatches, rows.Err()
}
