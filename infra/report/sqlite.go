package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	corereport "github.com/kilianp07/fleetsim/core/report"
)

// SQLiteStore persists records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := []string{
		`CREATE TABLE IF NOT EXISTS tick_reports (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT,
        tick INTEGER,
        record TEXT
    );`,
		`CREATE INDEX IF NOT EXISTS tick_reports_run ON tick_reports (run_id, tick);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			if cerr := db.Close(); cerr != nil {
				return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
			}
			return nil, err
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Append writes the record to the database.
func (s *SQLiteStore) Append(ctx context.Context, rec corereport.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tick_reports (run_id, tick, record) VALUES (?, ?, ?)`,
		rec.RunID, rec.Tick, string(b))
	return err
}

// Query returns records matching q ordered by insertion.
func (s *SQLiteStore) Query(ctx context.Context, q corereport.Query) ([]corereport.Record, error) {
	var args []any
	query := `SELECT record FROM tick_reports WHERE 1=1`
	if q.RunID != "" {
		query += ` AND run_id = ?`
		args = append(args, q.RunID)
	}
	if q.FromTick > 0 {
		query += ` AND tick >= ?`
		args = append(args, q.FromTick)
	}
	if q.ToTick > 0 {
		query += ` AND tick <= ?`
		args = append(args, q.ToTick)
	}
	query += ` ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []corereport.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r corereport.Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		if q.Match(r) {
			res = append(res, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
