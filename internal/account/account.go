// Package account authenticates site accounts.
package account

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cse340/motors/pkg/db"
	"github.com/cse340/motors/pkg/token"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("account: invalid credentials")

// Repository reads the account table.
type Repository struct {
	q db.Querier
}

// NewRepository creates a repository on q.
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

// Authenticate checks email and password and returns the account's identity.
func (r *Repository) Authenticate(ctx context.Context, email, password string) (token.Identity, error) {
	var (
		id   token.Identity
		hash string
	)
	err := r.q.QueryRow(ctx,
		`SELECT account_id, account_firstname, account_lastname, account_email, account_type::text, account_password
		FROM public.account WHERE account_email = $1`,
		strings.TrimSpace(email),
	).Scan(&id.AccountID, &id.FirstName, &id.LastName, &id.Email, &id.Type, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return token.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return token.Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return token.Identity{}, ErrInvalidCredentials
	}
	return id, nil
}

// HashPassword hashes password for storage in account_password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
