package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tomato/internal/modules/history/domain"
	historyout "tomato/internal/modules/history/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRecordProjector struct {
	db  *sql.DB
	loc *time.Location
}

func NewSQLiteRecordProjector(dbPath string, loc *time.Location) (*SQLiteRecordProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	projector := &SQLiteRecordProjector{db: db, loc: loc}
	if err := projector.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return projector, nil
}

var _ historyout.RecordIndexProjector = (*SQLiteRecordProjector)(nil)

func (s *SQLiteRecordProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  task TEXT NOT NULL,
  started_at TEXT NOT NULL,
  local_date TEXT NOT NULL,
  duration_secs INTEGER NOT NULL,
  completed INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_local_date ON sessions(local_date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) UpsertRecord(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO sessions (id, task, started_at, local_date, duration_secs, completed)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  task=excluded.task,
  started_at=excluded.started_at,
  local_date=excluded.local_date,
  duration_secs=excluded.duration_secs,
  completed=excluded.completed;
`
	completed := 0
	if record.Completed {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.Task,
		record.StartedAt.UTC().Format(time.RFC3339),
		domain.DateOf(record.StartedAt, s.loc).String(),
		record.DurationSecs,
		completed,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// FocusByDay reads per-day focus seconds back out of the index.
func (s *SQLiteRecordProjector) FocusByDay(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT local_date, SUM(duration_secs) FROM sessions GROUP BY local_date`)
	if err != nil {
		return nil, fmt.Errorf("query focus by day: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var day string
		var secs int
		if err := rows.Scan(&day, &secs); err != nil {
			return nil, fmt.Errorf("scan focus by day: %w", err)
		}
		out[day] = secs
	}
	return out, rows.Err()
}

func (s *SQLiteRecordProjector) Close() error {
	return s.db.Close()
}
