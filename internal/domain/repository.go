package domain

import "context"

// UserRepository persists and loads user records.
type UserRepository interface {
	// Create inserts a new user. Returns ErrEmailTaken when the email is
	// already registered.
	Create(ctx context.Context, user *User) (*User, error)
	// GetByEmail fetches a user by normalized email. Returns ErrNotFound when
	// no record exists.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByID fetches a user by UUID. Returns ErrNotFound when no record
	// exists.
	GetByID(ctx context.Context, id string) (*User, error)
}
