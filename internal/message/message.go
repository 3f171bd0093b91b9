// Package message reads account inboxes.
package message

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cse340/motors/pkg/db"
)

// ErrNotFound is returned when a message does not exist or belongs to someone else.
var ErrNotFound = errors.New("message: not found")

// Summary is one inbox row.
type Summary struct {
	Created time.Time
	Subject string
	From    string
	ID      int
	Read    bool
}

// Message is a full message. Body is markdown.
type Message struct {
	Body string
	Summary
}

// Repository reads the message table.
type Repository struct {
	q db.Querier
}

// NewRepository creates a repository on q.
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

// Inbox returns the unarchived messages sent to accountID, newest first.
func (r *Repository) Inbox(ctx context.Context, accountID int) ([]Summary, error) {
	rows, err := r.q.Query(ctx,
		`SELECT m.message_id, m.message_subject, m.message_created, m.message_read,
			a.account_firstname || ' ' || a.account_lastname
		FROM public.message AS m
		JOIN public.account AS a ON a.account_id = m.message_from
		WHERE m.message_to = $1 AND NOT m.message_archived
		ORDER BY m.message_created DESC`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Subject, &s.Created, &s.Read, &s.From); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Unread counts unread messages in a list.
func Unread(list []Summary) int {
	n := 0
	for _, s := range list {
		if !s.Read {
			n++
		}
	}
	return n
}

// ByID returns a message addressed to accountID.
func (r *Repository) ByID(ctx context.Context, id, accountID int) (Message, error) {
	var m Message
	err := r.q.QueryRow(ctx,
		`SELECT m.message_id, m.message_subject, m.message_body, m.message_created, m.message_read,
			a.account_firstname || ' ' || a.account_lastname
		FROM public.message AS m
		JOIN public.account AS a ON a.account_id = m.message_from
		WHERE m.message_id = $1 AND m.message_to = $2`,
		id, accountID,
	).Scan(&m.ID, &m.Subject, &m.Body, &m.Created, &m.Read, &m.From)
	if errors.Is(err, pgx.ErrNoRows) {
		return Message{}, ErrNotFound
	}
	if err != nil {
		return Message{}, err
	}
	return m, nil
}

// MarkRead flags a message addressed to accountID as read.
func (r *Repository) MarkRead(ctx context.Context, id, accountID int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE public.message SET message_read = true WHERE message_id = $1 AND message_to = $2`,
		id, accountID,
	)
	return err
}
