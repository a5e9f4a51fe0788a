// Package sqlite provides the SQLite-backed table store
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tvcorporativa/internal/repository"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB and implements repository.TableStore with
// spreadsheet-like semantics: whole tables of string rows, read in stored
// order and written by full overwrite.
type DB struct {
	*sql.DB
}

// New opens the store at dbPath, creating the directory if needed.
func New(dbPath string) (*DB, error) {
	cleanPath := filepath.Clean(dbPath)

	if !filepath.IsLocal(cleanPath) && !filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("invalid database path: potential path traversal detected")
	}

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL for concurrent display reads while the admin saves;
	// busy_timeout to ride out lock contention.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", cleanPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{db}, nil
}

// Migrate creates the backing tables. Rows are stored as JSON objects of
// column→string so a table's schema can change without DDL, exactly as a
// spreadsheet tab would.
func (db *DB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sheet_headers (
			sheet TEXT PRIMARY KEY,
			columns_json TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS sheet_rows (
			sheet TEXT NOT NULL,
			pos INTEGER NOT NULL,
			row_json TEXT NOT NULL,
			PRIMARY KEY (sheet, pos)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sheet_rows_sheet ON sheet_rows(sheet)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ReadTable returns the table's rows in stored order, projected onto the
// requested columns. Missing columns read as empty strings; an unknown
// table reads as empty.
func (db *DB) ReadTable(ctx context.Context, name string, columns []string) ([]repository.Row, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT row_json FROM sheet_rows WHERE sheet = ? ORDER BY pos`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	defer rows.Close()

	var out []repository.Row
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", name, err)
		}
		stored := map[string]string{}
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return nil, fmt.Errorf("corrupt row in table %s: %w", name, err)
		}
		row := make(repository.Row, len(columns))
		for _, col := range columns {
			row[col] = stored[col]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	return out, nil
}

// WriteTable overwrites the table's data region in one transaction and
// rewrites its header to match columns. The previous contents are gone
// after this: last full write wins.
func (db *DB) WriteTable(ctx context.Context, name string, columns []string, rows []repository.Row) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin write of %s: %w", name, err)
	}
	defer tx.Rollback()

	header, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to encode header of %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sheet_headers (sheet, columns_json, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(sheet) DO UPDATE SET columns_json = excluded.columns_json, updated_at = CURRENT_TIMESTAMP`,
		name, string(header)); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE sheet = ?`, name); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", name, err)
	}

	for pos, row := range rows {
		// project onto the schema so retired columns don't linger
		projected := make(map[string]string, len(columns))
		for _, col := range columns {
			projected[col] = row[col]
		}
		raw, err := json.Marshal(projected)
		if err != nil {
			return fmt.Errorf("failed to encode row %d of %s: %w", pos, name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_rows (sheet, pos, row_json) VALUES (?, ?, ?)`,
			name, pos, string(raw)); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", pos, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit write of %s: %w", name, err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
