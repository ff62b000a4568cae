package ports

import "github.com/socialdash/dashboard-api/internal/pkg/token"

// TokenService issues and verifies the bearer tokens exchanged with clients.
type TokenService interface {
	Issue(sub token.Subject) (string, error)
	Verify(raw string) (token.Subject, error)
}

// PasswordHasher produces and checks salted one-way password digests.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}
