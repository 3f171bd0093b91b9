package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// DefaultMigrationsTable is the goose bookkeeping table.
const DefaultMigrationsTable = "schema_migrations"

// Migrate applies every pending migration found at the root of migrations.
func Migrate(ctx context.Context, p *Provider, migrations fs.FS, migrationTable string, log *slog.Logger) error {
	pool, err := p.Pool(ctx)
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	// goose needs database/sql. The wrapper shares the pool's connections,
	// so it is deliberately not closed here.
	db := stdlib.OpenDBFromPool(pool)

	if migrationTable == "" {
		migrationTable = DefaultMigrationsTable
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

// Fatalf logs at error level only. goose returns the error itself,
// so exiting here would skip pool shutdown.
func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
