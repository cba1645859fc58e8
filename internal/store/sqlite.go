package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db      *sql.DB
	writeMu sync.Mutex // single-writer discipline; aggregate reads stay concurrent
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		detected_language TEXT NOT NULL,
		user_transcript TEXT NOT NULL,
		detected_intent TEXT NOT NULL,
		agent_response TEXT NOT NULL,
		summary TEXT
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Log appends one interaction. The assigned id is monotonic
// (AUTOINCREMENT never reuses ids).
func (s *SQLiteStore) Log(ctx context.Context, rec *Interaction) (int64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO interactions
		(timestamp, detected_language, user_transcript, detected_intent, agent_response, summary)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339Nano), rec.Language, rec.Transcript,
		rec.Intent, rec.Response, rec.Summary,
	)
	if err != nil {
		return 0, fmt.Errorf("insert interaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	rec.Timestamp = ts
	return id, nil
}

// Recent returns up to limit interactions, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Interaction, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, detected_language, user_transcript,
		       detected_intent, agent_response, summary
		FROM interactions
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var rec Interaction
		var ts string
		var summary sql.NullString
		if err := rows.Scan(&rec.ID, &ts, &rec.Language, &rec.Transcript,
			&rec.Intent, &rec.Response, &summary); err != nil {
			return nil, fmt.Errorf("scan interaction row: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		rec.Summary = summary.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats is a full group-by over the table. Volume is per-session, so
// recomputing on demand beats maintaining incremental counters.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByIntent:   make(map[string]int),
		ByLanguage: make(map[string]int),
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("count interactions: %w", err)
	}

	if err := s.groupCount(ctx, `SELECT detected_intent, COUNT(*) FROM interactions GROUP BY detected_intent`, stats.ByIntent); err != nil {
		return nil, err
	}
	if err := s.groupCount(ctx, `SELECT detected_language, COUNT(*) FROM interactions GROUP BY detected_language`, stats.ByLanguage); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *SQLiteStore) groupCount(ctx context.Context, query string, dst map[string]int) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("group query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("scan group row: %w", err)
		}
		dst[key] = n
	}
	return rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
