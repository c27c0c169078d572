package postgresql

import (
	"context"
	"fmt"

	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

// WithTransaction executes fn inside a database transaction. The context
// passed to fn carries the transaction, so repository calls made with it
// all run on the same transaction.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				fmt.Printf("rollback error during panic recovery: %v\n", rbErr)
			}
			panic(p)
		}
	}()

	hooks := &database.CommitHooks{}
	txCtx := database.WithCommitHooks(database.WithQuerier(ctx, tx), hooks)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	hooks.Run()
	return nil
}

// GetQuerier returns either the transaction carried by ctx or the pool.
// Used in repositories to support both transactional and non-transactional
// operations.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if q, ok := database.QuerierFrom(ctx); ok {
		return q
	}
	return db.Pool
}

type txManager struct {
	db *database.DB
}

// NewTxManager returns the pool-backed database.TxManager used by services.
func NewTxManager(db *database.DB) database.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, m.db, fn)
}
