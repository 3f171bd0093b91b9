// Package initdb loads the seed schema into the configured database and
// applies the embedded session migration. It backs cmd/initdb and is meant
// to run once per deploy before the server starts.
package initdb

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"

	"github.com/cse340/motors/internal/config"
	"github.com/cse340/motors/pkg/db"
	"github.com/cse340/motors/pkg/logger"
	"github.com/cse340/motors/pkg/session"
)

// DefaultScript is the schema file loaded when -file is not given.
const DefaultScript = "database/db-sql-code.sql"

// Exit codes returned by Main.
const (
	ExitOK    = 0
	ExitFail  = 1
	ExitUsage = 2
)

var ErrScriptMissing = errors.New("initdb: schema script not found")

// Options describes a single schema load.
type Options struct {
	Script         string
	SessionTable   string
	MigrationTable string
}

// Main parses args, runs the loader and returns the process exit code.
// Logs and flag usage go to w.
func Main(ctx context.Context, args []string, w io.Writer) int {
	fset := flag.NewFlagSet("initdb", flag.ContinueOnError)
	fset.SetOutput(w)
	script := fset.String("file", DefaultScript, "path to the SQL schema script")
	if err := fset.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		logger.NewFromConfig(logger.Config{}, w).Error("DB init: failed", slog.Any("error", err))
		return ExitFail
	}
	log := logger.NewFromConfig(cfg.Log, w)

	p := db.NewProvider(cfg.DB, log)
	defer func() { _ = db.Shutdown(p)(context.Background()) }()

	log.Info("DB init: running", slog.String("file", *script))
	err = Run(ctx, p, Options{Script: *script, SessionTable: cfg.Session.Table}, log)
	if err != nil {
		log.Error("DB init: failed", slog.Any("error", err))
		return ExitFail
	}
	log.Info("DB init: success")
	return ExitOK
}

// Run executes the schema script in one transaction, then migrates the
// session table. The script is checked before any connection is made.
func Run(ctx context.Context, p *db.Provider, opts Options, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	dir, name := filepath.Split(opts.Script)
	if dir == "" {
		dir = "."
	}
	fsys := os.DirFS(dir)
	if _, err := os.Stat(opts.Script); err != nil {
		return errors.Join(ErrScriptMissing, err)
	}

	if err := db.WithTx(ctx, p, func(tx pgx.Tx) error {
		return db.LoadScript(ctx, tx, fsys, name)
	}); err != nil {
		return err
	}

	// The embedded migration targets the default table. A custom table is
	// created lazily by the store on first use instead.
	if opts.SessionTable != "" && opts.SessionTable != session.DefaultTable {
		log.Info("session table is custom, skipping session migration", slog.String("table", opts.SessionTable))
		return nil
	}
	return db.Migrate(ctx, p, session.Migrations(), opts.MigrationTable, log)
}
