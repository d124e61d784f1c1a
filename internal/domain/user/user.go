package user

import (
	"fmt"
	"time"
)

// User is a minimal customer-account projection: just the contact and value
// data the churn and retention flows need.
type User struct {
	id            uint
	email         string
	name          string
	phone         string
	lifetimeValue float64
	createdAt     time.Time
}

// Reconstruct rebuilds a user from persistence.
func Reconstruct(id uint, email, name, phone string, lifetimeValue float64, createdAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:            id,
		email:         email,
		name:          name,
		phone:         phone,
		lifetimeValue: lifetimeValue,
		createdAt:     createdAt,
	}, nil
}

func (u *User) ID() uint               { return u.id }
func (u *User) Email() string          { return u.email }
func (u *User) Name() string           { return u.name }
func (u *User) Phone() string          { return u.phone }
func (u *User) LifetimeValue() float64 { return u.lifetimeValue }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
