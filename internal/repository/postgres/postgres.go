package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"memberclub-backend/internal/storage"

	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS snapshot_records (
	collection TEXT NOT NULL,
	position INTEGER NOT NULL,
	payload JSONB NOT NULL,
	saved_on TIMESTAMP NOT NULL,
	PRIMARY KEY (collection, position)
)`

// Store keeps every collection as ordered JSONB rows of one table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects with the lib/pq driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewStore(db), nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create snapshot_records: %w", err)
	}
	return nil
}

// Write replaces all rows of a collection inside one transaction.
func (s *Store) Write(ctx context.Context, collection storage.Collection, records []json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_records WHERE collection = $1`, string(collection)); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}

	savedOn := time.Now()
	query := `INSERT INTO snapshot_records (collection, position, payload, saved_on) VALUES ($1, $2, $3, $4)`
	for i, rec := range records {
		if _, err := tx.ExecContext(ctx, query, string(collection), i, string(rec), savedOn); err != nil {
			return fmt.Errorf("insert %s record %d: %w", collection, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", collection, err)
	}
	return nil
}

func (s *Store) Read(ctx context.Context, collection storage.Collection) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM snapshot_records WHERE collection = $1 ORDER BY position`, string(collection))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		records = append(records, json.RawMessage(payload))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return records, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
