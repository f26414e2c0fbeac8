package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "embed"

	_ "github.com/lib/pq"

	"github.com/mindmetrics/dass21/internal/api"
)

// Connection pool configuration for the Postgres backend.
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

var _ api.Store = (*PostgresStore)(nil)

// NewPostgresStore connects to the database described by dsn and ensures the
// schema exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(defaultMaxOpenConns)
	sqlDB.SetMaxIdleConns(defaultMaxIdleConns)
	sqlDB.SetConnMaxLifetime(defaultConnMaxLifetime)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := sqlDB.Exec(postgresMigrations); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run postgres migrations: %w", err)
	}
	return &PostgresStore{db: sqlDB}, nil
}

func (s *PostgresStore) CreateDocument(collection string, doc map[string]any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	id := api.NewDocumentID()
	_, err = s.db.Exec(
		`INSERT INTO documents (id, collection, data, created_at) VALUES ($1, $2, $3, $4)`,
		id, collection, string(data), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert document into %s: %w", collection, err)
	}
	return id, nil
}

func (s *PostgresStore) GetDocuments(collection string, limit int) ([]map[string]any, error) {
	rows, err := s.db.Query(
		`SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		collection, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents in %s: %w", collection, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (s *PostgresStore) ListCollections() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()
	return scanCollections(rows)
}

func (s *PostgresStore) Ping() error { return s.db.Ping() }

func (s *PostgresStore) Close() error { return s.db.Close() }
