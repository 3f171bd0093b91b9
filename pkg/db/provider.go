package db

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool, pgx.Tx and the Provider.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Provider owns the process-wide connection pool.
// Construct one at startup and pass it to every component that needs the database.
// The pool is built on first use and reused for the life of the process; building
// it does not dial, connections are opened lazily as queries borrow them.
type Provider struct {
	pool   *pgxpool.Pool
	err    error
	logger *slog.Logger
	cfg    Config
	once   sync.Once
}

// NewProvider creates a provider for cfg. Nothing is parsed or dialed yet.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{cfg: cfg, logger: logger}
}

// Pool returns the shared pool, building it on the first call.
// Every call returns the same pool (or the same construction error).
func (p *Provider) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	p.once.Do(func() {
		poolCfg, err := p.cfg.PoolConfig()
		if err != nil {
			p.err = err
			return
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			p.err = errors.Join(ErrFailedToOpenDBConnection, err)
			return
		}
		p.pool = pool
		p.logger.Info("database pool configured",
			slog.String("host", poolCfg.ConnConfig.Host),
			slog.String("database", poolCfg.ConnConfig.Database),
			slog.Bool("tls", poolCfg.ConnConfig.TLSConfig != nil),
			slog.Int("max_conns", int(poolCfg.MaxConns)),
		)
	})
	return p.pool, p.err
}

// Config returns the configuration the provider was built with.
func (p *Provider) Config() Config {
	return p.cfg
}

// Exec runs sql on a pooled connection.
func (p *Provider) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool, err := p.Pool(ctx)
	if err != nil {
		return pgconn.CommandTag{}, p.fail(ctx, sql, classify(err))
	}
	tag, err := pool.Exec(ctx, sql, args...)
	if err != nil {
		return tag, p.fail(ctx, sql, classify(err))
	}
	return tag, nil
}

// Query runs sql and returns the resulting rows.
func (p *Provider) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool, err := p.Pool(ctx)
	if err != nil {
		return nil, p.fail(ctx, sql, classify(err))
	}
	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, p.fail(ctx, sql, classify(err))
	}
	return rows, nil
}

// QueryRow runs sql expecting at most one row. Errors surface from Scan.
func (p *Provider) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, err := p.Pool(ctx)
	if err != nil {
		return errRow{err: p.fail(ctx, sql, classify(err))}
	}
	return &loggedRow{row: pool.QueryRow(ctx, sql, args...), p: p, ctx: ctx, sql: sql}
}

// Close closes the pool if it was ever built.
func (p *Provider) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Provider) fail(ctx context.Context, sql string, err error) error {
	if p.cfg.QueryLogging {
		p.logger.ErrorContext(ctx, "error in query",
			slog.String("sql", sql),
			slog.String("error", err.Error()),
		)
	}
	return err
}

type loggedRow struct {
	row pgx.Row
	p   *Provider
	ctx context.Context
	sql string
}

func (r *loggedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return r.p.fail(r.ctx, r.sql, classify(err))
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

var _ Querier = (*Provider)(nil)
