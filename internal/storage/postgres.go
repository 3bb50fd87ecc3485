// Package storage implements the durable PostgreSQL backing for the
// engine's MerkleTree nodes and NullifierSet, adapted from the teacher's
// PostgresStore connection/pool pattern (SPEC_FULL.md §11) onto the
// merkle.TreeStore and nullifier.Store interfaces (spec §4.2/§4.3, §6).
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ccoin/shieldpool/pkg/types"
)

// Common errors.
var (
	ErrNotFound     = errors.New("storage: not found")
	ErrDBConnection = errors.New("storage: database connection error")
)

// Config holds database connection configuration, unchanged in shape from
// the teacher's internal/storage.Config.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
}

// DefaultConfig returns default database configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "shieldpool",
		Password: "",
		Database: "shieldpool",
		SSLMode:  "disable",
		MaxConns: 20,
	}
}

// PostgresStore implements both merkle.TreeStore and nullifier.Store against
// a single Postgres schema (tables: merkle_nodes, pool_state, nullifiers).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool and verifies connectivity,
// following the teacher's connection-string + Ping pattern.
func NewPostgresStore(ctx context.Context, cfg *Config) (*PostgresStore, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode, cfg.MaxConns,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Schema is the DDL this store expects; callers run it once via a migration
// tool (not owned by this package, matching the teacher's approach of not
// embedding migrations in internal/storage).
const Schema = `
CREATE TABLE IF NOT EXISTS merkle_nodes (
	level INTEGER NOT NULL,
	index BIGINT NOT NULL,
	hash BYTEA NOT NULL,
	PRIMARY KEY (level, index)
);

CREATE TABLE IF NOT EXISTS pool_state (
	id SMALLINT PRIMARY KEY DEFAULT 1,
	root BYTEA NOT NULL,
	size BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS nullifiers (
	nullifier BYTEA PRIMARY KEY
);
`

// --- merkle.TreeStore ---

// GetNode retrieves a Merkle node by (level, index).
func (s *PostgresStore) GetNode(ctx context.Context, level, index uint64) (types.Hash, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT hash FROM merkle_nodes WHERE level = $1 AND index = $2`,
		level, index,
	).Scan(&raw)

	if errors.Is(err, pgx.ErrNoRows) {
		return types.Hash{}, false, nil
	}
	if err != nil {
		return types.Hash{}, false, fmt.Errorf("get node: %w", err)
	}
	return types.HashFromBytes(raw), true, nil
}

// SetNode stores a Merkle node, overwriting any previous value at the slot.
func (s *PostgresStore) SetNode(ctx context.Context, level, index uint64, hash types.Hash) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO merkle_nodes (level, index, hash) VALUES ($1, $2, $3)
		 ON CONFLICT (level, index) DO UPDATE SET hash = EXCLUDED.hash`,
		level, index, hash[:],
	)
	if err != nil {
		return fmt.Errorf("set node: %w", err)
	}
	return nil
}

// GetRoot returns the current root from pool_state.
func (s *PostgresStore) GetRoot(ctx context.Context) (types.Hash, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT root FROM pool_state WHERE id = 1`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Hash{}, ErrNotFound
	}
	if err != nil {
		return types.Hash{}, fmt.Errorf("get root: %w", err)
	}
	return types.HashFromBytes(raw), nil
}

// SetRoot upserts the current root into pool_state.
func (s *PostgresStore) SetRoot(ctx context.Context, root types.Hash) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO pool_state (id, root, size) VALUES (1, $1, 0)
		 ON CONFLICT (id) DO UPDATE SET root = EXCLUDED.root`,
		root[:],
	)
	if err != nil {
		return fmt.Errorf("set root: %w", err)
	}
	return nil
}

// GetSize returns next_index from pool_state.
func (s *PostgresStore) GetSize(ctx context.Context) (uint64, error) {
	var size uint64
	err := s.pool.QueryRow(ctx, `SELECT size FROM pool_state WHERE id = 1`).Scan(&size)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get size: %w", err)
	}
	return size, nil
}

// SetSize upserts next_index into pool_state.
func (s *PostgresStore) SetSize(ctx context.Context, size uint64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO pool_state (id, root, size) VALUES (1, '', $1)
		 ON CONFLICT (id) DO UPDATE SET size = EXCLUDED.size`,
		size,
	)
	if err != nil {
		return fmt.Errorf("set size: %w", err)
	}
	return nil
}

// --- nullifier.Store ---

// Has checks nullifier membership.
func (s *PostgresStore) Has(ctx context.Context, n types.Hash) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM nullifiers WHERE nullifier = $1)`,
		n[:],
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check nullifier: %w", err)
	}
	return exists, nil
}

// Add inserts a nullifier, relying on the primary key to reject duplicates.
func (s *PostgresStore) Add(ctx context.Context, n types.Hash) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO nullifiers (nullifier) VALUES ($1)`,
		n[:],
	)
	if err != nil {
		return fmt.Errorf("add nullifier: %w", err)
	}
	return nil
}
