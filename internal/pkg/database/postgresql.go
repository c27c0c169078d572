package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

func NewPostgreSQLDB(dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)

	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type querierKey struct{}

// WithQuerier returns a context carrying q. Repositories prefer the carried
// querier over the pool, so every statement inside a transaction shares it.
func WithQuerier(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, querierKey{}, q)
}

// QuerierFrom extracts the querier carried by ctx, if any.
func QuerierFrom(ctx context.Context) (Querier, bool) {
	q, ok := ctx.Value(querierKey{}).(Querier)
	return q, ok
}

// TxManager runs a function inside a single database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CommitHooks collects callbacks that must not observe an uncommitted
// transaction, such as realtime pushes for rows the transaction inserts.
type CommitHooks struct {
	fns []func()
}

// Run executes the collected callbacks in registration order.
func (h *CommitHooks) Run() {
	for _, fn := range h.fns {
		fn()
	}
}

type commitHooksKey struct{}

// WithCommitHooks returns a context carrying h for OnCommit registration.
func WithCommitHooks(ctx context.Context, h *CommitHooks) context.Context {
	return context.WithValue(ctx, commitHooksKey{}, h)
}

// OnCommit defers fn until the transaction carried by ctx commits. Outside
// a transaction fn runs immediately.
func OnCommit(ctx context.Context, fn func()) {
	if h, ok := ctx.Value(commitHooksKey{}).(*CommitHooks); ok {
		h.fns = append(h.fns, fn)
		return
	}
	fn()
}
