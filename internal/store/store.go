package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/dimsheet/dimsheet/internal/dimension"
	"github.com/dimsheet/dimsheet/internal/extract"
)

// Extraction is one stored extraction run
type Extraction struct {
	ID             int64                 `json:"id"`
	Drawing        string                `json:"drawing"`
	SizeBytes      int64                 `json:"size_bytes"`
	Pages          int                   `json:"pages"`
	Strategy       string                `json:"strategy,omitempty"`
	ContentType    string                `json:"content_type"`
	DimensionCount int                   `json:"dimension_count"`
	CriticalCount  int                   `json:"critical_count"`
	CreatedAt      time.Time             `json:"created_at"`
	Dimensions     []dimension.Dimension `json:"dimensions,omitempty"`
}

// Store is the SQLite-backed extraction history
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    drawing TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    pages INTEGER NOT NULL,
    strategy TEXT NOT NULL DEFAULT '',
    content_type TEXT NOT NULL DEFAULT '',
    dimension_count INTEGER NOT NULL,
    critical_count INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS dimensions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    extraction_id INTEGER NOT NULL REFERENCES extractions(id) ON DELETE CASCADE,
    balloon INTEGER NOT NULL,
    parameter TEXT NOT NULL,
    nominal REAL,
    tolerance TEXT NOT NULL,
    dim_type TEXT NOT NULL DEFAULT '',
    instrument TEXT NOT NULL,
    page INTEGER NOT NULL DEFAULT 0,
    raw TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_dimensions_extraction ON dimensions(extraction_id);
`

// Open opens (or creates) the history database and applies the schema
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a small pool
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// buildDSN enables foreign keys, WAL, and a busy timeout so the watcher
// and the web server can share the file
func buildDSN(path string) string {
	params := []string{
		"_foreign_keys=on",
		"_busy_timeout=5000",
		"_journal_mode=WAL",
	}
	if strings.Contains(path, "?") {
		return path + "&" + strings.Join(params, "&")
	}
	return path + "?" + strings.Join(params, "&")
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks database connectivity
func (s *Store) Ping() error {
	return s.db.Ping()
}

// SaveResult persists an extraction and its dimensions, returning the new
// extraction id
func (s *Store) SaveResult(result *extract.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.Exec(
		`INSERT INTO extractions (drawing, size_bytes, pages, strategy, content_type, dimension_count, critical_count)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Drawing, result.Size, result.Pages, result.Strategy,
		result.ContentType, result.Summary.Total, result.Summary.CriticalCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert extraction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read extraction id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO dimensions (extraction_id, balloon, parameter, nominal, tolerance, dim_type, instrument, page, raw)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare dimension insert: %w", err)
	}
	defer stmt.Close()

	for _, dim := range result.Dimensions {
		var nominal any
		if dim.Nominal != nil {
			nominal = *dim.Nominal
		}
		if _, err := stmt.Exec(id, dim.Balloon, dim.Parameter, nominal,
			dim.Tolerance, dim.Type, dim.Instrument, dim.Page, dim.Raw); err != nil {
			return 0, fmt.Errorf("failed to insert dimension %d: %w", dim.Balloon, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit extraction: %w", err)
	}

	return id, nil
}

// ListExtractions returns the most recent extractions, newest first,
// without their dimensions
func (s *Store) ListExtractions(limit int) ([]Extraction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, drawing, size_bytes, pages, strategy, content_type, dimension_count, critical_count, created_at
         FROM extractions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query extractions: %w", err)
	}
	defer rows.Close()

	var extractions []Extraction
	for rows.Next() {
		var e Extraction
		if err := rows.Scan(&e.ID, &e.Drawing, &e.SizeBytes, &e.Pages, &e.Strategy,
			&e.ContentType, &e.DimensionCount, &e.CriticalCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		extractions = append(extractions, e)
	}

	return extractions, rows.Err()
}

// GetExtraction returns one extraction with its dimensions
func (s *Store) GetExtraction(id int64) (*Extraction, error) {
	var e Extraction
	err := s.db.QueryRow(
		`SELECT id, drawing, size_bytes, pages, strategy, content_type, dimension_count, critical_count, created_at
         FROM extractions WHERE id = ?`, id).
		Scan(&e.ID, &e.Drawing, &e.SizeBytes, &e.Pages, &e.Strategy,
			&e.ContentType, &e.DimensionCount, &e.CriticalCount, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("extraction %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query extraction: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT balloon, parameter, nominal, tolerance, dim_type, instrument, page, raw
         FROM dimensions WHERE extraction_id = ? ORDER BY balloon, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query dimensions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dim dimension.Dimension
		var nominal sql.NullFloat64
		if err := rows.Scan(&dim.Balloon, &dim.Parameter, &nominal, &dim.Tolerance,
			&dim.Type, &dim.Instrument, &dim.Page, &dim.Raw); err != nil {
			return nil, fmt.Errorf("failed to scan dimension: %w", err)
		}
		if nominal.Valid {
			v := nominal.Float64
			dim.Nominal = &v
		}
		e.Dimensions = append(e.Dimensions, dim)
	}

	return &e, rows.Err()
}

// DeleteExtraction removes an extraction and, through the cascade, its
// dimensions
func (s *Store) DeleteExtraction(id int64) error {
	res, err := s.db.Exec(`DELETE FROM extractions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete extraction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("extraction %d not found", id)
	}

	return nil
}
