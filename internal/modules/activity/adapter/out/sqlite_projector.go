package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"

	_ "modernc.org/sqlite"
)

// SQLiteRecordProjector mirrors the joined table into a SQLite file so it can
// be queried outside the dashboard.
type SQLiteRecordProjector struct {
	db *sql.DB
}

func NewSQLiteRecordProjector(dbPath string) (*SQLiteRecordProjector, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRecordProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteRecordProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activity_records (
  row_id INTEGER PRIMARY KEY,
  day_id INTEGER NOT NULL,
  time TEXT NOT NULL,
  name TEXT NOT NULL,
  track_id TEXT NOT NULL,
  track_kind TEXT NOT NULL,
  activity TEXT NOT NULL,
  date TEXT,
  date_time TEXT,
  top1 TEXT,
  top2 TEXT,
  power INTEGER NOT NULL,
  delta INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_records_track ON activity_records(track_id);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create activity_records table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM activity_records`); err != nil {
		return fmt.Errorf("reset activity_records: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) InsertRecords(ctx context.Context, records []domain.JoinedRecord) error {
	const stmt = `
INSERT INTO activity_records (day_id, time, name, track_id, track_kind, activity, date, date_time, top1, top2, power, delta)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer prepared.Close()
	for _, r := range records {
		_, err := prepared.ExecContext(ctx,
			r.DayID,
			r.Time,
			r.Name,
			r.TrackID.String(),
			r.TrackID.Kind().String(),
			r.Activity,
			nullable(r.Date),
			nullable(r.DateTime),
			nullable(r.Top1),
			nullable(r.Top2),
			r.Power,
			r.Delta,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert activity record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count activity_records: %w", err)
	}
	return n, nil
}

// CategoryMinutes runs the aggregator's grouping in SQL against the projection.
func (s *SQLiteRecordProjector) CategoryMinutes(ctx context.Context, column domain.CategoryColumn) (map[string]float64, error) {
	var field string
	switch column {
	case domain.CategoryTop1:
		field = "top1"
	case domain.CategoryTop2:
		field = "top2"
	default:
		return nil, fmt.Errorf("unknown category column %q", string(column))
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+field+`, SUM(delta) FROM activity_records GROUP BY `+field)
	if err != nil {
		return nil, fmt.Errorf("query category minutes: %w", err)
	}
	defer rows.Close()
	out := map[string]float64{}
	for rows.Next() {
		var label sql.NullString
		var sum int
		if err := rows.Scan(&label, &sum); err != nil {
			return nil, fmt.Errorf("scan category minutes: %w", err)
		}
		key := domain.NullLabel
		if label.Valid {
			key = label.String
		}
		out[key] = float64(sum) / domain.MinutesDivisor
	}
	return out, rows.Err()
}

func (s *SQLiteRecordProjector) Close() error {
	return s.db.Close()
}

func nullable(v domain.NullString) sql.NullString {
	return sql.NullString{String: v.String, Valid: v.Valid}
}
