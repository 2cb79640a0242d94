// Package account resolves the backend consumer account an order is placed
// under: look up by email, create only when the account truly does not
// exist.
package account

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Directory.FindByEmail when no account exists
// for the given email. Only this error triggers account creation; any other
// lookup failure (network, server) propagates to the caller instead of
// silently falling through to a duplicate create.
var ErrNotFound = errors.New("account not found")

// User is a backend consumer account.
type User struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// CreateParams holds the fields for creating a new consumer account.
type CreateParams struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Directory is the remote user store the resolver works against.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	CreateConsumer(ctx context.Context, p CreateParams) (*User, error)
}
