// Package token issues and verifies the signed bearer tokens that carry a
// session between the client and the API.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 7 * 24 * time.Hour

var ErrExpired = errors.New("token expired")
var ErrInvalid = errors.New("invalid token")

// Subject is the normalized identity carried by a verified token. Older
// deployments signed the user id under "_id" or "userId"; Verify folds all
// three shapes into ID so the ambiguity never travels past this package.
type Subject struct {
	ID    string
	Email string
}

// Service signs and verifies HS256 tokens with a server-held secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for sub, valid for the service TTL.
func (s *Service) Issue(sub Subject) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"id":    sub.ID,
		"email": sub.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates raw. The accepted algorithm set is pinned to
// HS256: tokens signed with any other method, including "none", fail even
// when their signature would be valid under that method. Expiry is reported
// as ErrExpired so callers can message the user differently from tampering.
func (s *Service) Verify(raw string) (Subject, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Subject{}, ErrExpired
		}
		return Subject{}, ErrInvalid
	}
	if !tkn.Valid {
		return Subject{}, ErrInvalid
	}

	sub := Subject{}
	for _, key := range []string{"id", "_id", "userId"} {
		if v, ok := claims[key].(string); ok && v != "" {
			sub.ID = v
			break
		}
	}
	if v, ok := claims["email"].(string); ok {
		sub.Email = v
	}
	if sub.ID == "" {
		return Subject{}, ErrInvalid
	}
	return sub, nil
}
