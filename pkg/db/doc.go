// Package db owns the PostgreSQL connection pool for the application.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] behind a [Provider] that is built
// once at startup and shared by the session store, navigation builder and
// route handlers.
//
// # Configuration
//
// Settings are read from the environment (see [Config]):
//
//	DATABASE_URL        - full DSN, overrides everything below
//	DATABASE_SSL        - "true" forces TLS with relaxed certificate checks
//	PGHOST              - host (default: 127.0.0.1)
//	PGPORT              - port (default: 5432)
//	PGUSER              - user (default: postgres)
//	PGPASSWORD          - password (default: empty string, always sent)
//	PGDATABASE          - database (default: cse_motors)
//	DATABASE_MAX_CONNS  - pool ceiling (default: 10)
//
// # Usage
//
//	provider := db.NewProvider(cfg, logger)
//	defer provider.Close()
//
//	var name string
//	err := provider.QueryRow(ctx, "SELECT classification_name FROM classification WHERE classification_id = $1", id).Scan(&name)
//
// The pool is configured lazily and never dials during construction. When the
// server cannot be reached, the failing query returns a [*ConnectionError].
//
// # Query logging
//
// With [Config.QueryLogging] enabled (development), every failing statement is
// logged as "error in query" together with its SQL text before the error is
// returned.
//
// # Schema bootstrap
//
// [LoadScript] runs a deploy-time SQL script after [StripOwnership] has removed
// OWNER TO clauses, and [Migrate] applies embedded goose migrations.
package db
