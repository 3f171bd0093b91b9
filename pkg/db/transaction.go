package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// WithTx executes fn within a database transaction on the provider's pool.
// If fn returns an error, the transaction is rolled back.
// If fn panics, the transaction is rolled back and the panic is re-raised.
// If fn succeeds, the transaction is committed.
func WithTx(ctx context.Context, p *Provider, fn func(tx pgx.Tx) error) error {
	pool, err := p.Pool(ctx)
	if err != nil {
		return classify(err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return classify(err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}
