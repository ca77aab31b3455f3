package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the record table. Every collection is a JSON document keyed
// by (bucket, key); users live under "users", per-user quest lists under
// "quests", message logs under "messages".
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			bucket TEXT NOT NULL,
			key TEXT NOT NULL,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (bucket, key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_bucket ON records(bucket);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
