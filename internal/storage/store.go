package storage

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the local persistence collaborator: JSON records keyed by user.
type Store struct {
	db   *sql.DB
	q    querier
	log  *zap.Logger
	inTx bool
}

func NewStore(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, q: db, log: log.Named("storage")}
}

func (s *Store) DB() *sql.DB { return s.db }
