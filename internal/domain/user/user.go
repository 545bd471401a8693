// Package user provides the user entity consumed by the lending core as a principal.
package user

import (
	"fmt"
	"time"

	"libris/internal/shared/authorization"
)

// Status represents the account status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// User represents an account. The lending core consumes only its ID and
// admin flag; the rest serves the auth collaborator and admin CRUD.
type User struct {
	id           uint
	name         string
	email        string
	passwordHash string
	role         authorization.UserRole
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

// PasswordHasher abstracts the hash algorithm used for account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// NewUser creates a new active user with the given role.
func NewUser(name, email, passwordHash string, role authorization.UserRole) (*User, error) {
	if name == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid user role: %s", role)
	}

	now := time.Now()
	return &User{
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(
	id uint,
	name, email, passwordHash string,
	role authorization.UserRole,
	status Status,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid user role: %s", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid user status: %s", status)
	}

	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ID returns the user ID.
func (u *User) ID() uint {
	return u.id
}

// SetID sets the ID after persistence assigns one.
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// Name returns the display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the email address.
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the stored password hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the account role.
func (u *User) Role() authorization.UserRole {
	return u.role
}

// Status returns the account status.
func (u *User) Status() Status {
	return u.status
}

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the last update timestamp.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.role.IsAdmin()
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.status == StatusActive
}

// Principal returns the explicit principal the lending core consumes.
func (u *User) Principal() authorization.Principal {
	return authorization.Principal{UserID: u.id, Role: u.role}
}

// VerifyPassword checks a candidate password against the stored hash.
func (u *User) VerifyPassword(password string, hasher PasswordHasher) error {
	return hasher.Verify(password, u.passwordHash)
}

// UpdateProfile replaces name and email.
func (u *User) UpdateProfile(name, email string) error {
	if name == "" {
		return fmt.Errorf("user name is required")
	}
	if email == "" {
		return fmt.Errorf("user email is required")
	}
	u.name = name
	u.email = email
	u.updatedAt = time.Now()
	return nil
}

// ChangePassword stores a new password hash.
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = time.Now()
	return nil
}

// ChangeRole replaces the account role.
func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid user role: %s", role)
	}
	u.role = role
	u.updatedAt = time.Now()
	return nil
}

// ChangeStatus replaces the account status.
func (u *User) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid user status: %s", status)
	}
	u.status = status
	u.updatedAt = time.Now()
	return nil
}
