package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrUsernameTaken = errors.New("username already taken")
var ErrUserExists = errors.New("user already exists")

// User models an account in the dashboard. PasswordHash is empty for accounts
// created through Google sign-in; GoogleID is empty for password-only accounts.
// At least one of the two is set on every persisted record.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	GoogleID     string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidationError aggregates every input violation found in one request body.
// All fields are checked before it is raised, so Reasons carries the full list.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

// ExternalIdentity is the result of verifying an identity-provider token.
// The signature check itself happens in the infrastructure layer; the core
// only ever sees an already-verified identity.
type ExternalIdentity struct {
	Subject     string
	Email       string
	DisplayName string
}
