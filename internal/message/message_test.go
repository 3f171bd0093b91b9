package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cse340/motors/internal/message"
	"github.com/cse340/motors/pkg/db/dbtest"
)

func TestInbox(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	q := dbtest.New(dbtest.Result{
		Match: "FROM public.message",
		Rows: [][]any{
			{2, "Test drive", now, false, "Happy Employee"},
			{1, "Welcome", now.Add(-time.Hour), true, "Manager Admin"},
		},
	})

	got, err := message.NewRepository(q).Inbox(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Test drive", got[0].Subject)
	require.Equal(t, "Happy Employee", got[0].From)
	require.Equal(t, 1, message.Unread(got))
	require.Equal(t, []any{7}, q.Calls()[0].Args)
}

func TestInbox_Empty(t *testing.T) {
	t.Parallel()

	q := dbtest.New(dbtest.Result{Match: "FROM public.message"})
	got, err := message.NewRepository(q).Inbox(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Zero(t, message.Unread(got))
}

func TestByID(t *testing.T) {
	t.Parallel()

	now := time.Now()
	q := dbtest.New(
		dbtest.Result{Match: "UPDATE public.message", Tag: "UPDATE 1"},
		dbtest.Result{
			Match: "WHERE m.message_id = $1 AND m.message_to = $2",
			Rows:  [][]any{{4, "Offer", "We can do **$5,000**.", now, false, "Happy Employee"}},
		},
	)
	repo := message.NewRepository(q)

	m, err := repo.ByID(context.Background(), 4, 7)
	require.NoError(t, err)
	require.Equal(t, "Offer", m.Subject)
	require.Equal(t, "We can do **$5,000**.", m.Body)
	require.Equal(t, []any{4, 7}, q.Calls()[0].Args)

	require.NoError(t, repo.MarkRead(context.Background(), 4, 7))
	require.Contains(t, q.Calls()[1].SQL, "message_read = true")
}

func TestByID_OtherRecipient(t *testing.T) {
	t.Parallel()

	q := dbtest.New(dbtest.Result{Match: "WHERE m.message_id = $1"})
	_, err := message.NewRepository(q).ByID(context.Background(), 4, 8)
	require.ErrorIs(t, err, message.ErrNotFound)
}
