package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-rental/internal/domain"
)

// Role distinguishes regular users from platform administrators. Every
// user can act as both tenant and host; those are relationships to a
// booking or property, not roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the aggregate root for an account.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	firstName    string
	lastName     string
	address      string
	role         Role
	createdAt    time.Time
}

// NewUser creates a new user account. The password hash is produced by the
// caller; the domain never sees plaintext credentials.
func NewUser(email, passwordHash, firstName, lastName, address string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	if firstName == "" {
		return nil, domain.NewValidationError("first name is required")
	}
	if lastName == "" {
		return nil, domain.NewValidationError("last name is required")
	}

	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		address:      address,
		role:         RoleUser,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, email, passwordHash, firstName, lastName, address string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		address:      address,
		role:         role,
		createdAt:    createdAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// PasswordHash returns the stored credential hash.
func (u *User) PasswordHash() string { return u.passwordHash }

// FirstName returns the user's first name.
func (u *User) FirstName() string { return u.firstName }

// LastName returns the user's last name.
func (u *User) LastName() string { return u.lastName }

// FullName returns the user's display name.
func (u *User) FullName() string { return u.firstName + " " + u.lastName }

// Address returns the user's address.
func (u *User) Address() string { return u.address }

// Role returns the user's role.
func (u *User) Role() Role { return u.role }

// CreatedAt returns the registration timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }
