package session_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/cse340/motors/pkg/session"
)

// fakeDB is an in-memory stand-in for the session table.
type fakeDB struct {
	rows    map[string]fakeRow
	execErr error
	creates int
	mu      sync.Mutex
}

type fakeRow struct {
	expire time.Time
	data   []byte
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[string]fakeRow)}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}

	switch {
	case strings.HasPrefix(sql, "CREATE TABLE"):
		f.creates++
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	case strings.HasPrefix(sql, "CREATE INDEX"):
		return pgconn.NewCommandTag("CREATE INDEX"), nil
	case strings.HasPrefix(sql, "INSERT"):
		f.rows[args[0].(string)] = fakeRow{data: args[1].([]byte), expire: args[2].(time.Time)}
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "WHERE sid"):
		_, ok := f.rows[args[0].(string)]
		delete(f.rows, args[0].(string))
		if ok {
			return pgconn.NewCommandTag("DELETE 1"), nil
		}
		return pgconn.NewCommandTag("DELETE 0"), nil
	case strings.Contains(sql, "WHERE expire <"):
		n := 0
		for id, r := range f.rows {
			if r.expire.Before(time.Now()) {
				delete(f.rows, id)
				n++
			}
		}
		return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", n)), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected sql: %s", sql)
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.rows[args[0].(string)]
	if !ok || !r.expire.After(time.Now()) {
		return scanRow{err: pgx.ErrNoRows}
	}
	return scanRow{data: r.data, expire: r.expire}
}

func (f *fakeDB) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type scanRow struct {
	err    error
	expire time.Time
	data   []byte
}

func (r scanRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.data
	*dest[1].(*time.Time) = r.expire
	return nil
}

func storeImplementations(t *testing.T) map[string]func() session.Store {
	t.Helper()
	return map[string]func() session.Store{
		"memory":   func() session.Store { return session.NewMemoryStore() },
		"postgres": func() session.Store { return session.NewPostgresStore(newFakeDB()) },
	}
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, mk := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := mk()

			sess := session.New(session.NewID(), time.Now().Add(time.Hour))
			sess.Set("user", "alice")
			sess.AddFlash(session.FlashSuccess, "Welcome")
			require.NoError(t, store.Save(ctx, sess))

			loaded, err := store.Load(ctx, sess.ID)
			require.NoError(t, err)
			require.Equal(t, sess.ID, loaded.ID)
			require.Equal(t, "alice", session.ValueOr(loaded, "user", ""))
			require.False(t, loaded.IsNew())
			require.False(t, loaded.IsDirty())
			require.Equal(t, []session.Flash{{Kind: session.FlashSuccess, Text: "Welcome"}}, loaded.ConsumeFlashes())
		})
	}
}

func TestStore_SaveTwiceKeepsOneRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fake := newFakeDB()
	store := session.NewPostgresStore(fake)

	sess := session.New("same-id", time.Now().Add(time.Hour))
	require.NoError(t, store.Save(ctx, sess))
	sess.Set("k", "v2")
	require.NoError(t, store.Save(ctx, sess))

	require.Equal(t, 1, fake.count())
	loaded, err := store.Load(ctx, "same-id")
	require.NoError(t, err)
	require.Equal(t, "v2", session.ValueOr(loaded, "k", ""))
}

func TestStore_MissingAndExpired(t *testing.T) {
	t.Parallel()

	for name, mk := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := mk()

			_, err := store.Load(ctx, "nope")
			require.ErrorIs(t, err, session.ErrNotFound)

			expired := session.New("old", time.Now().Add(-time.Minute))
			require.NoError(t, store.Save(ctx, expired))
			_, err = store.Load(ctx, "old")
			require.ErrorIs(t, err, session.ErrNotFound)
		})
	}
}

func TestStore_Destroy(t *testing.T) {
	t.Parallel()

	for name, mk := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := mk()

			sess := session.New("gone", time.Now().Add(time.Hour))
			require.NoError(t, store.Save(ctx, sess))
			require.NoError(t, store.Destroy(ctx, "gone"))
			require.NoError(t, store.Destroy(ctx, "gone"))

			_, err := store.Load(ctx, "gone")
			require.ErrorIs(t, err, session.ErrNotFound)
		})
	}
}

func TestStore_Prune(t *testing.T) {
	t.Parallel()

	for name, mk := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := mk()

			require.NoError(t, store.Save(ctx, session.New("live", time.Now().Add(time.Hour))))
			require.NoError(t, store.Save(ctx, session.New("dead1", time.Now().Add(-time.Hour))))
			require.NoError(t, store.Save(ctx, session.New("dead2", time.Now().Add(-time.Minute))))

			n, err := store.(session.Pruner).Prune(ctx)
			require.NoError(t, err)
			require.Equal(t, int64(2), n)

			_, err = store.Load(ctx, "live")
			require.NoError(t, err)
		})
	}
}

func TestPostgresStore_StorageFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fake := newFakeDB()
	fake.execErr = errors.New("connection refused")
	store := session.NewPostgresStore(fake)

	_, err := store.Load(ctx, "any")
	require.Error(t, err)
	require.True(t, session.IsStoreError(err))
	require.NotErrorIs(t, err, session.ErrNotFound)

	err = store.Save(ctx, session.New("x", time.Now().Add(time.Hour)))
	require.True(t, session.IsStoreError(err))

	// Table creation is retried once storage recovers.
	fake.mu.Lock()
	fake.execErr = nil
	fake.mu.Unlock()

	require.NoError(t, store.Save(ctx, session.New("x", time.Now().Add(time.Hour))))
	require.NoError(t, store.Save(ctx, session.New("y", time.Now().Add(time.Hour))))
	require.Equal(t, 1, fake.creates)
}

func TestPostgresStore_CorruptPayload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fake := newFakeDB()
	fake.rows["bad"] = fakeRow{data: []byte("{not json"), expire: time.Now().Add(time.Hour)}
	store := session.NewPostgresStore(fake)

	_, err := store.Load(ctx, "bad")
	require.True(t, session.IsStoreError(err))
	require.ErrorIs(t, err, session.ErrCorrupt)
}

func TestSchedulePrune(t *testing.T) {
	t.Parallel()

	c := cron.New()
	store := session.NewMemoryStore()

	_, err := session.SchedulePrune(c, store, 0, nil)
	require.ErrorIs(t, err, session.ErrInvalidPruneInterval)

	id, err := session.SchedulePrune(c, store, session.DefaultPruneInterval, nil)
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Len(t, c.Entries(), 1)
}

func TestMigrations(t *testing.T) {
	t.Parallel()

	f, err := session.Migrations().Open("00001_create_session.sql")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}
