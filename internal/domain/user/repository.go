package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by email, or nil if no account exists.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user. Implementations must enforce email
	// uniqueness.
	Save(ctx context.Context, user *User) error
}
