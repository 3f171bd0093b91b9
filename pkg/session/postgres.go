package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cse340/motors/pkg/db"
)

// DefaultTable is the table sessions are stored in.
const DefaultTable = "session"

// PostgresStore persists sessions in a PostgreSQL table.
// The table is created on first use when missing.
type PostgresStore struct {
	q     db.Querier
	table string

	mu    sync.Mutex
	ready bool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTable overrides the session table name.
func WithTable(name string) PostgresOption {
	return func(s *PostgresStore) {
		if name != "" {
			s.table = name
		}
	}
}

// NewPostgresStore creates a store backed by q.
func NewPostgresStore(q db.Querier, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{q: q, table: DefaultTable}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ensureTable creates the session table once. A failed attempt is retried on the next call.
func (s *PostgresStore) ensureTable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	table := pgx.Identifier{s.table}.Sanitize()
	index := pgx.Identifier{"IDX_" + s.table + "_expire"}.Sanitize()

	if _, err := s.q.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+table+` (
		sid varchar NOT NULL PRIMARY KEY,
		sess json NOT NULL,
		expire timestamp(6) with time zone NOT NULL
	)`); err != nil {
		return err
	}
	if _, err := s.q.Exec(ctx, `CREATE INDEX IF NOT EXISTS `+index+` ON `+table+` (expire)`); err != nil {
		return err
	}

	s.ready = true
	return nil
}

// Load returns the live session with the given id.
func (s *PostgresStore) Load(ctx context.Context, id string) (*Session, error) {
	if err := s.ensureTable(ctx); err != nil {
		return nil, storeErr("load", err)
	}

	var (
		data   []byte
		expire time.Time
	)
	err := s.q.QueryRow(ctx,
		`SELECT sess, expire FROM `+pgx.Identifier{s.table}.Sanitize()+` WHERE sid = $1 AND expire > now()`,
		id,
	).Scan(&data, &expire)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("load", err)
	}

	sess, err := decode(id, data, expire)
	if err != nil {
		return nil, storeErr("load", err)
	}
	return sess, nil
}

// Save upserts the session row.
func (s *PostgresStore) Save(ctx context.Context, sess *Session) error {
	if err := s.ensureTable(ctx); err != nil {
		return storeErr("save", err)
	}

	data, err := encode(sess)
	if err != nil {
		return storeErr("save", err)
	}

	if _, err := s.q.Exec(ctx,
		`INSERT INTO `+pgx.Identifier{s.table}.Sanitize()+` (sid, sess, expire) VALUES ($1, $2, $3)
		ON CONFLICT (sid) DO UPDATE SET sess = EXCLUDED.sess, expire = EXCLUDED.expire`,
		sess.ID, data, sess.ExpiresAt,
	); err != nil {
		return storeErr("save", err)
	}
	return nil
}

// Destroy deletes the session row.
func (s *PostgresStore) Destroy(ctx context.Context, id string) error {
	if err := s.ensureTable(ctx); err != nil {
		return storeErr("destroy", err)
	}
	if _, err := s.q.Exec(ctx, `DELETE FROM `+pgx.Identifier{s.table}.Sanitize()+` WHERE sid = $1`, id); err != nil {
		return storeErr("destroy", err)
	}
	return nil
}

// Prune deletes every expired row.
func (s *PostgresStore) Prune(ctx context.Context) (int64, error) {
	if err := s.ensureTable(ctx); err != nil {
		return 0, storeErr("prune", err)
	}
	tag, err := s.q.Exec(ctx, `DELETE FROM `+pgx.Identifier{s.table}.Sanitize()+` WHERE expire < now()`)
	if err != nil {
		return 0, storeErr("prune", err)
	}
	return tag.RowsAffected(), nil
}

var (
	_ Store  = (*PostgresStore)(nil)
	_ Pruner = (*PostgresStore)(nil)
)
