package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// TxManager runs a unit of work inside a single database transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx SQLExecutor) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a TxManager backed by db.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (m *sqlTxManager) WithinTx(ctx context.Context, fn func(tx SQLExecutor) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
