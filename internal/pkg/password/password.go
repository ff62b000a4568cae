// Package password wraps bcrypt hashing for credential storage.
package password

import "golang.org/x/crypto/bcrypt"

const cost = 10

// Hasher produces and checks salted bcrypt digests. The zero value is ready
// to use.
type Hasher struct{}

// Hash returns a salted bcrypt digest of plain. Each call salts
// independently, so two hashes of the same password differ.
func (Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. An empty digest (accounts
// created through federated login carry no password) verifies false: the
// caller fails closed with invalid credentials rather than an error.
func (Hasher) Verify(plain, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
