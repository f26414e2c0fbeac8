// Package db provides SQL-backed implementations of the api.Store
// document-store contract.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mindmetrics/dass21/internal/api"
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

var _ api.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (and if needed creates) the SQLite database at path
// and ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := sqlDB.Exec(stmt); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if _, err := sqlDB.Exec(sqliteMigrations); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run sqlite migrations: %w", err)
	}
	return &SQLiteStore{db: sqlDB}, nil
}

func (s *SQLiteStore) CreateDocument(collection string, doc map[string]any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	id := api.NewDocumentID()
	_, err = s.db.Exec(
		`INSERT INTO documents (id, collection, data, created_at) VALUES (?, ?, ?, ?)`,
		id, collection, string(data), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert document into %s: %w", collection, err)
	}
	return id, nil
}

func (s *SQLiteStore) GetDocuments(collection string, limit int) ([]map[string]any, error) {
	rows, err := s.db.Query(
		`SELECT id, data FROM documents WHERE collection = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		collection, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents in %s: %w", collection, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (s *SQLiteStore) ListCollections() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()
	return scanCollections(rows)
}

func (s *SQLiteStore) Ping() error { return s.db.Ping() }

func (s *SQLiteStore) Close() error { return s.db.Close() }

// shared row scanning for both SQL backends

func scanDocuments(rows *sql.Rows) ([]map[string]any, error) {
	out := []map[string]any{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		doc := map[string]any{}
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		doc["_id"] = id
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}
	return out, nil
}

func scanCollections(rows *sql.Rows) ([]string, error) {
	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection rows: %w", err)
	}
	return names, nil
}
