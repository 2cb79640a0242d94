package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/go-faster/errors"
)

// Resolver finds an existing consumer account by email or creates one with
// a generated password and a normalized phone number.
type Resolver struct {
	users Directory
}

// NewResolver creates a Resolver backed by the given directory.
func NewResolver(users Directory) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the account for the given email, creating a consumer
// account when none exists. Lookup errors other than ErrNotFound propagate
// unchanged; if the account exists no create call is issued.
func (r *Resolver) Resolve(ctx context.Context, name, email, phone string) (*User, error) {
	u, err := r.users.FindByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "look up account")
	}

	created, err := r.users.CreateConsumer(ctx, CreateParams{
		Name:     name,
		Email:    email,
		Phone:    NormalizePhone(phone),
		Password: generatePassword(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create consumer account")
	}
	return created, nil
}

// NormalizePhone normalizes a UK phone number to international form:
// whitespace removed, a leading "0" stripped and replaced with "+44".
// Numbers already carrying a "+" prefix are returned as-is.
func NormalizePhone(raw string) string {
	p := strings.Join(strings.Fields(raw), "")
	p = strings.ReplaceAll(p, "-", "")
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "+") {
		return p
	}
	p = strings.TrimPrefix(p, "0")
	return "+44" + p
}

// generatePassword returns a random password for backend-created accounts.
// The customer never sees it; they reset it through the normal flow.
func generatePassword() string {
	buf := make([]byte, 18)
	// rand.Read never fails on supported platforms; it panics internally
	// when the kernel source is unavailable.
	_, _ = rand.Read(buf)
	return base64.URLEncoding.EncodeToString(buf)
}
