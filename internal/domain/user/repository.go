package user

import "context"

type Repository interface {
	// GetByID returns the user, or nil when no such user exists.
	GetByID(ctx context.Context, id uint) (*User, error)
}
