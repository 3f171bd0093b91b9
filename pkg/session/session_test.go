package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cse340/motors/pkg/session"
)

func TestSession_New(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(24 * time.Hour)
	sess := session.New("test-id", expiresAt)

	require.Equal(t, "test-id", sess.ID)
	require.True(t, sess.IsNew())
	require.True(t, sess.IsDirty())
	require.NotNil(t, sess.Values)
	require.Equal(t, expiresAt, sess.ExpiresAt)
}

func TestSession_Values(t *testing.T) {
	t.Parallel()

	sess := session.New("id", time.Now().Add(time.Hour))
	sess.ClearDirty()

	sess.Set("key", "value")
	require.True(t, sess.IsDirty())

	val, ok := sess.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", val)

	_, ok = sess.Get("nonexistent")
	require.False(t, ok)
}

func TestSession_Delete(t *testing.T) {
	t.Parallel()

	sess := session.New("id", time.Now().Add(time.Hour))
	sess.Set("key", "value")
	sess.ClearDirty()

	sess.Delete("missing")
	require.False(t, sess.IsDirty(), "deleting a missing key must not dirty the session")

	sess.Delete("key")
	require.True(t, sess.IsDirty())
	_, ok := sess.Get("key")
	require.False(t, ok)
}

func TestSession_Touch(t *testing.T) {
	t.Parallel()

	sess := session.New("id", time.Now().Add(time.Minute))
	sess.ClearDirty()

	sess.Touch(time.Hour)
	require.True(t, sess.IsDirty())
	require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Second)
}

func TestSession_Flashes(t *testing.T) {
	t.Parallel()

	sess := session.New("id", time.Now().Add(time.Hour))
	sess.ClearDirty()

	require.Nil(t, sess.ConsumeFlashes())
	require.False(t, sess.IsDirty(), "consuming an empty queue must not dirty the session")

	sess.AddFlash(session.FlashNotice, "first")
	sess.AddFlash(session.FlashError, "second")
	require.True(t, sess.IsDirty())
	require.Len(t, sess.PendingFlashes(), 2)

	sess.ClearDirty()
	got := sess.ConsumeFlashes()
	require.Equal(t, []session.Flash{
		{Kind: session.FlashNotice, Text: "first"},
		{Kind: session.FlashError, Text: "second"},
	}, got)
	require.True(t, sess.IsDirty())
	require.Empty(t, sess.PendingFlashes())
}

func TestValue(t *testing.T) {
	t.Parallel()

	sess := session.New("id", time.Now().Add(time.Hour))
	sess.Set("string", "hello")
	sess.Set("int", 42)

	s, ok := session.Value[string](sess, "string")
	require.True(t, ok)
	require.Equal(t, "hello", s)

	_, ok = session.Value[string](sess, "int")
	require.False(t, ok)

	_, ok = session.Value[string](sess, "missing")
	require.False(t, ok)

	_, ok = session.Value[string](nil, "string")
	require.False(t, ok)
}

func TestValueOr(t *testing.T) {
	t.Parallel()

	sess := session.New("id", time.Now().Add(time.Hour))
	sess.Set("int", 42)

	require.Equal(t, 42, session.ValueOr(sess, "int", 0))
	require.Equal(t, 7, session.ValueOr(sess, "missing", 7))
	require.Equal(t, "x", session.ValueOr(sess, "int", "x"))
}

func TestNewID(t *testing.T) {
	t.Parallel()

	a, b := session.NewID(), session.NewID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
