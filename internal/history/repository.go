// Package history keeps a local record of lookups and adds so users can
// review what they have searched for across sessions.
//
// History is best effort: callers treat a history failure as cosmetic and
// never let it break a lookup.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"bigskydata/mtcounties/internal/database"
)

// Repository defines the persistence interface for lookup history.
type Repository interface {
	Save(entry *Entry) error
	ListRecent(limit int) ([]Entry, error)
	CountByCounty(limit int) ([]CountyCount, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the history repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS lookups (
            id        INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp TEXT NOT NULL,
            city      TEXT NOT NULL,
            county    TEXT NOT NULL DEFAULT '',
            outcome   TEXT NOT NULL,
            source    TEXT NOT NULL DEFAULT ''
        );
        CREATE INDEX IF NOT EXISTS idx_lookups_timestamp ON lookups(timestamp);
        CREATE INDEX IF NOT EXISTS idx_lookups_county ON lookups(county);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("history: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new entry, assigning its ID.
func (r *SQLiteRepository) Save(entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO lookups (timestamp, city, county, outcome, source)
        VALUES (?, ?, ?, ?, ?)`,
		entry.Timestamp.Format(time.RFC3339Nano), entry.City, entry.County, entry.Outcome, entry.Source,
	)
	if err != nil {
		return fmt.Errorf("history: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// ListRecent returns the most recent entries, newest first.
func (r *SQLiteRepository) ListRecent(limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, city, county, outcome, source
        FROM lookups ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// CountByCounty returns lookup counts grouped by county, most looked-up
// first. Entries with no county (misses) are excluded.
func (r *SQLiteRepository) CountByCounty(limit int) ([]CountyCount, error) {
	rows, err := r.db.Query(`
        SELECT county, COUNT(*) AS n
        FROM lookups WHERE county != ''
        GROUP BY county ORDER BY n DESC, county ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()

	var counts []CountyCount
	for rows.Next() {
		var c CountyCount
		if err := rows.Scan(&c.County, &c.Count); err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Prune deletes entries older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM lookups WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var timestampStr string
		err := rows.Scan(&entry.ID, &timestampStr, &entry.City, &entry.County, &entry.Outcome, &entry.Source)
		if err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
