// Package persistence provides SQLite storage for natal charts and the
// per-user omen history used for anti-repetition.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/star-omens/internal/astro"
)

// SchemaVersion is stored in the meta table on migrate.
const SchemaVersion = 1

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
	now  func() time.Time
}

// HistoryEntry is one user's omen for one day.
type HistoryEntry struct {
	ID         string    `db:"id" json:"id"`
	UserKey    string    `db:"user_key" json:"userKey"`
	DayKey     string    `db:"day_key" json:"dayKey"`
	TemplateID string    `db:"template_id" json:"templateId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the connection.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS natal_charts (
		birth_key TEXT PRIMARY KEY,
		chart_json TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS omen_history (
		id TEXT PRIMARY KEY,
		user_key TEXT NOT NULL,
		day_key TEXT NOT NULL,
		template_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE (user_key, day_key)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_user_day ON omen_history(user_key, day_key);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return err
	}
	return db.SaveMeta("schema_version", strconv.Itoa(SchemaVersion))
}

// NatalChart returns the cached chart for key, or nil when absent.
func (db *DB) NatalChart(key string) (*astro.Chart, error) {
	var raw string
	err := db.conn.Get(&raw, "SELECT chart_json FROM natal_charts WHERE birth_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load natal chart: %w", err)
	}

	var c astro.Chart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode natal chart %q: %w", key, err)
	}
	return &c, nil
}

// SaveNatalChart stores c under key, replacing any earlier entry.
func (db *DB) SaveNatalChart(key string, c *astro.Chart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode natal chart: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO natal_charts (birth_key, chart_json, created_at) VALUES (?, ?, ?)",
		key, string(raw), db.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save natal chart: %w", err)
	}
	return nil
}

// RecordOmen stores the template a user saw on dayKey. A second record for
// the same day replaces the template but keeps the row ID.
func (db *DB) RecordOmen(userKey, dayKey, templateID string) error {
	_, err := db.conn.Exec(`INSERT INTO omen_history (id, user_key, day_key, template_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_key, day_key) DO UPDATE SET template_id = excluded.template_id`,
		uuid.NewString(), userKey, dayKey, templateID, db.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record omen for %s/%s: %w", userKey, dayKey, err)
	}
	slog.Debug("omen recorded", "user", userKey, "day", dayKey, "template", templateID)
	return nil
}

// RecentTemplateIDs returns up to limit template IDs the user saw on days
// before dayKey, newest day first. Later days are ignored so that replaying
// an earlier dayKey reproduces its omen.
func (db *DB) RecentTemplateIDs(userKey, dayKey string, limit int) ([]string, error) {
	ids := []string{}
	err := db.conn.Select(&ids,
		`SELECT template_id FROM omen_history
		WHERE user_key = ? AND day_key < ?
		ORDER BY day_key DESC LIMIT ?`,
		userKey, dayKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent templates: %w", err)
	}
	return ids, nil
}

// History returns the user's most recent entries, newest day first.
func (db *DB) History(userKey string, limit int) ([]HistoryEntry, error) {
	entries := []HistoryEntry{}
	err := db.conn.Select(&entries,
		`SELECT id, user_key, day_key, template_id, created_at FROM omen_history
		WHERE user_key = ? ORDER BY day_key DESC LIMIT ?`,
		userKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return entries, nil
}

// Stats counts stored rows.
type Stats struct {
	NatalCharts int `db:"natal_charts" json:"natalCharts"`
	HistoryRows int `db:"history_rows" json:"historyRows"`
}

// Stats returns table sizes.
func (db *DB) Stats() (Stats, error) {
	var s Stats
	err := db.conn.Get(&s, `SELECT
		(SELECT COUNT(*) FROM natal_charts) AS natal_charts,
		(SELECT COUNT(*) FROM omen_history) AS history_rows`)
	return s, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
