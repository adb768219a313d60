package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/IvanShishkin/filecommander/pkg/models"
	_ "github.com/mattn/go-sqlite3"
)

// DB holds the database connection
type DB struct {
	*sql.DB
}

// New opens (creating if needed) the SQLite database at dbPath
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Migrate creates the catalog table
func (db *DB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS file_catalog (
			scan_id TEXT NOT NULL,
			path TEXT NOT NULL,
			directory TEXT NOT NULL,
			name TEXT NOT NULL,
			extension TEXT NOT NULL,
			file_type TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			modified_at TEXT NOT NULL,
			last_accessed_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_file_catalog_file_type ON file_catalog(file_type)`,
		`CREATE INDEX IF NOT EXISTS idx_file_catalog_directory ON file_catalog(directory)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveCatalog replaces the contents of file_catalog with cat in a single
// transaction. The table is an export target only; nothing reads it back.
func (db *DB) SaveCatalog(ctx context.Context, cat *models.Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM file_catalog`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO file_catalog
		(scan_id, path, directory, name, extension, file_type, size_bytes, created_at, modified_at, last_accessed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	scanID := cat.ID().String()
	for _, r := range cat.Records() {
		var accessed sql.NullString
		if r.HasAccessTime() {
			accessed = sql.NullString{String: formatTime(r.LastAccessedAt), Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			scanID,
			r.Path,
			r.Directory(),
			r.Name,
			r.Extension,
			string(r.FileType),
			r.SizeBytes,
			formatTime(r.CreatedAt),
			formatTime(r.ModifiedAt),
			accessed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", r.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// CountRecords returns the number of exported rows
func (db *DB) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM file_catalog`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Export opens dbPath, migrates it and saves cat
func Export(ctx context.Context, dbPath string, cat *models.Catalog) error {
	db, err := New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}
	return db.SaveCatalog(ctx, cat)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
