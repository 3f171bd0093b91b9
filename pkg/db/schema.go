package db

import (
	"context"
	"errors"
	"io/fs"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ALTER TYPE ... OWNER TO ...; statements are dropped entirely.
	alterTypeOwnerRe = regexp.MustCompile(`(?is)ALTER TYPE.*?OWNER TO.*?;`)
	// Any remaining "OWNER TO role;" tail is reduced to a bare terminator.
	ownerToRe = regexp.MustCompile(`(?i)OWNER TO\s+\w+\s*;`)
)

// Execer executes a statement batch.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StripOwnership removes role ownership clauses that fail on managed hosts
// where the referenced role does not exist.
func StripOwnership(script string) string {
	script = alterTypeOwnerRe.ReplaceAllString(script, "")
	return ownerToRe.ReplaceAllString(script, ";")
}

// LoadScript reads name from fsys, strips ownership clauses and executes the
// result as one batch. Exec without arguments uses the simple protocol, so
// multi-statement scripts are accepted.
func LoadScript(ctx context.Context, ex Execer, fsys fs.FS, name string) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Join(ErrReadScript, err)
	}

	if _, err := ex.Exec(ctx, StripOwnership(string(raw))); err != nil {
		return errors.Join(ErrExecScript, classify(err))
	}
	return nil
}
