package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createResumeRecordsTable = `CREATE TABLE IF NOT EXISTS resume_records (
	key        TEXT PRIMARY KEY,
	content    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresBackend stores each record as a JSONB row keyed by storage key
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresBackend{pool: pool}, nil
}

// EnsureSchema creates the resume_records table if it does not exist
func (p *PostgresBackend) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, createResumeRecordsTable); err != nil {
		return fmt.Errorf("failed to create resume_records table: %w", err)
	}
	return nil
}

// Get returns the stored content for key
func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM resume_records WHERE key = $1`,
		key,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return content, nil
}

// Put upserts the content for key
func (p *PostgresBackend) Put(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO resume_records (key, content)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET content = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}
	return nil
}

// Close closes the connection pool
func (p *PostgresBackend) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
