// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite record of analyzed texts and the weather
// records found in them.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/weather-extractor/pkg/types"
)

const dbFile = "history.db"

// Store manages the history database.
type Store struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// Open opens or creates dir/history.db and its schema.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			analyzed_at TEXT NOT NULL,
			record_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id INTEGER NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			temperature TEXT NOT NULL,
			humidity TEXT NOT NULL DEFAULT '',
			pressure TEXT NOT NULL DEFAULT '',
			wind_speed TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_analysis_id ON records(analysis_id)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_source ON analyses(source)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save records one analysis of source and the records found in it, and
// returns the analysis ID. An analysis with no records is still recorded.
func (s *Store) Save(ctx context.Context, source string, records []types.WeatherRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (source, analyzed_at, record_count) VALUES (?, ?, ?)`,
		source, s.now().UTC().Format(time.RFC3339Nano), len(records),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting analysis: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading analysis id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (analysis_id, position, temperature, humidity, pressure, wind_speed, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			id, i+1, r.Temperature, r.Humidity, r.Pressure, r.WindSpeed, r.Description,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing analysis: %w", err)
	}
	return id, nil
}

// Entry is one stored record with the analysis it came from.
type Entry struct {
	AnalysisID int64               `json:"analysis_id" yaml:"analysis_id"`
	Source     string              `json:"source" yaml:"source"`
	AnalyzedAt time.Time           `json:"analyzed_at" yaml:"analyzed_at"`
	Position   int                 `json:"position" yaml:"position"`
	Record     types.WeatherRecord `json:"record" yaml:"record"`
}

// ListOptions filters List results.
type ListOptions struct {
	// Source keeps only analyses of this source when non-empty.
	Source string

	// Limit caps the number of entries; zero means no limit.
	Limit int
}

// List returns stored records, newest analysis first and in document order
// within an analysis.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if opts.Source != "" {
		where = append(where, "a.source = ?")
		args = append(args, opts.Source)
	}

	query := `SELECT a.id, a.source, a.analyzed_at, r.position,
		r.temperature, r.humidity, r.pressure, r.wind_speed, r.description
		FROM records r JOIN analyses a ON a.id = r.analysis_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.id DESC, r.position ASC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			analyzedAt string
		)
		if err := rows.Scan(&e.AnalysisID, &e.Source, &analyzedAt, &e.Position,
			&e.Record.Temperature, &e.Record.Humidity, &e.Record.Pressure,
			&e.Record.WindSpeed, &e.Record.Description); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.AnalyzedAt, err = time.Parse(time.RFC3339Nano, analyzedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing analyzed_at %q: %w", analyzedAt, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
