// Package storage provides SQLite-based persistence for the practice log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/michaelssim/soundbuddy/internal/engine"
)

// timeLayout stores UTC timestamps at fixed width so text order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for the practice log.
type Store struct {
	db *sql.DB
}

// Session is one stored Start..Stop interval.
type Session struct {
	ID        string
	BPM       int
	PeriodMS  int64
	StartedAt time.Time
	EndedAt   time.Time
	Pulses    int64
	Missed    int64
}

// Duration returns how long the session ran.
func (s Session) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// TempoStats aggregates sessions at one BPM.
type TempoStats struct {
	BPM      int
	Sessions int
	Total    time.Duration
	Pulses   int64
	LastUsed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			bpm INTEGER NOT NULL,
			period_ms INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			pulses INTEGER NOT NULL DEFAULT 0,
			missed INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_bpm ON sessions(bpm);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession stores a session and returns its generated ID.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, bpm, period_ms, started_at, ended_at, duration_ms, pulses, missed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.BPM,
		sess.PeriodMS,
		sess.StartedAt.UTC().Format(timeLayout),
		sess.EndedAt.UTC().Format(timeLayout),
		sess.Duration().Milliseconds(),
		sess.Pulses,
		sess.Missed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess.ID, nil
}

// RecordSession implements engine.Recorder. Sessions without a single pulse
// are not worth a row and are skipped.
func (s *Store) RecordSession(rec engine.SessionRecord) error {
	if rec.Pulses == 0 {
		return nil
	}
	_, err := s.SaveSession(Session{
		BPM:       rec.BPM,
		PeriodMS:  rec.Period.Milliseconds(),
		StartedAt: rec.StartedAt,
		EndedAt:   rec.EndedAt,
		Pulses:    rec.Pulses,
		Missed:    rec.Missed,
	})
	return err
}

// Ensure Store implements engine.Recorder
var _ engine.Recorder = (*Store)(nil)

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, bpm, period_ms, started_at, ended_at, pulses, missed
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started, ended string
		if err := rows.Scan(&sess.ID, &sess.BPM, &sess.PeriodMS, &started, &ended, &sess.Pulses, &sess.Missed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = parseTime(started)
		sess.EndedAt = parseTime(ended)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// TempoStats aggregates the log per BPM, most practiced first.
func (s *Store) TempoStats() ([]TempoStats, error) {
	rows, err := s.db.Query(
		`SELECT bpm, COUNT(*), SUM(duration_ms), SUM(pulses), MAX(started_at)
		 FROM sessions
		 GROUP BY bpm
		 ORDER BY SUM(duration_ms) DESC, bpm ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tempo stats: %w", err)
	}
	defer rows.Close()

	var stats []TempoStats
	for rows.Next() {
		var st TempoStats
		var totalMS int64
		var last string
		if err := rows.Scan(&st.BPM, &st.Sessions, &totalMS, &st.Pulses, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Total = time.Duration(totalMS) * time.Millisecond
		st.LastUsed = parseTime(last)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// TotalPractice returns the summed duration of all sessions.
func (s *Store) TotalPractice() (time.Duration, error) {
	var total sql.NullInt64
	if err := s.db.QueryRow("SELECT SUM(duration_ms) FROM sessions").Scan(&total); err != nil {
		return 0, fmt.Errorf("storage: cannot query total practice: %w", err)
	}
	if !total.Valid {
		return 0, nil
	}
	return time.Duration(total.Int64) * time.Millisecond, nil
}

// Clear deletes the whole practice log.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
