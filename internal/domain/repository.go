package domain

import "context"

// UserRepository persists one User document per subject ID.
type UserRepository interface {
	// Get returns ErrNotFound when no document exists for uid.
	Get(ctx context.Context, uid string) (*User, error)
	// Create writes a new document and returns ErrAlreadyRegistered if uid is taken.
	Create(ctx context.Context, user *User) error
	// UpdateLogin sets lastLogin, name, email and phone only.
	UpdateLogin(ctx context.Context, uid string, update LoginUpdate) error
	// MarkVerified sets isVerified=true and leaves every other field untouched.
	MarkVerified(ctx context.Context, uid string) error
	// Ping checks connectivity for health reporting.
	Ping(ctx context.Context) error
}
