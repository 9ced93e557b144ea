package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/probegrid/sensord/internal/store"
)

// Record is a single persisted reading.
type Record struct {
	ID         int64
	Timestamp  time.Time
	Name       string
	HardwareID string
	Unit       string
	Value      float64
}

// Recorder persists cycle snapshots to SQLite. The modernc.org driver is
// pure Go and needs no CGO.
type Recorder struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and runs the migration.
// The caller must Close the Recorder on shutdown.
func Open(path string, logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_fk=1", path))
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping db: %w", err)
	}

	r := &Recorder{db: db, logger: logger.With("component", "history")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Recorder) migrate() error {
	const stmt = `
CREATE TABLE IF NOT EXISTS readings (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    ts          DATETIME NOT NULL,
    name        TEXT NOT NULL,
    hardware_id TEXT NOT NULL DEFAULT '',
    unit        TEXT NOT NULL DEFAULT '',
    value       REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_name_ts ON readings(name, ts);
`
	if _, err := r.db.Exec(stmt); err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// RecordSnapshot stores every series of a snapshot in a single transaction:
// either all rows are written or none.
func (r *Recorder) RecordSnapshot(ctx context.Context, ts time.Time, snapshot []store.Series) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO readings (ts, name, hardware_id, unit, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("history: prepare insert: %w", err)
	}
	defer stmt.Close()

	utc := ts.UTC()
	for _, s := range snapshot {
		if _, err := stmt.ExecContext(ctx, utc, s.Name, s.Labels["hardware_id"], s.Labels["unit"], s.Value); err != nil {
			tx.Rollback()
			return fmt.Errorf("history: insert %s: %w", s.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit tx: %w", err)
	}

	r.logger.Debug("snapshot persisted", "ts", utc, "series", len(snapshot))
	return nil
}

// Query returns readings for the named metric between from and to, sorted
// by timestamp ascending. An empty name matches all metrics.
func (r *Recorder) Query(ctx context.Context, name string, from, to time.Time) ([]Record, error) {
	const base = `SELECT id, ts, name, hardware_id, unit, value FROM readings
WHERE ts >= ? AND ts <= ?`

	var (
		rows *sql.Rows
		err  error
	)
	if name == "" {
		rows, err = r.db.QueryContext(ctx, base+` ORDER BY ts ASC`, from.UTC(), to.UTC())
	} else {
		rows, err = r.db.QueryContext(ctx, base+` AND name = ? ORDER BY ts ASC`, from.UTC(), to.UTC(), name)
	}
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Name, &rec.HardwareID, &rec.Unit, &rec.Value); err != nil {
			return nil, fmt.Errorf("history: scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate rows: %w", err)
	}
	return records, nil
}

// Close releases the database connection.
func (r *Recorder) Close() error {
	return r.db.Close()
}
