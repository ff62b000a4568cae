// Package sanitize validates and normalizes untrusted auth input before it
// reaches the database layer. It rejects values that would read as MongoDB
// query operators or script payloads if interpolated into a filter.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

// RFC 5322 simplified, applied after lowercasing.
var emailRe = regexp.MustCompile(`^[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Mongo operator tokens and script markers that must never appear in an
// identifier field, even when the surrounding shape looks valid.
var operatorTokens = []string{
	"$where", "$ne", "$gt", "$gte", "$lt", "$lte",
	"$regex", "$in", "$nin", "$or", "$and",
	"javascript:", "<script",
}

// Input is the raw request body projection handed to AuthInput.
type Input struct {
	Username string
	Email    string
	Password string
}

// Fields is the validated, normalized projection of an Input. It is built
// fresh per request and never persisted.
type Fields struct {
	Username string
	Email    string
	Password string
}

// Email trims, lowercases and validates an email address.
func Email(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) < 3 || len(s) > 254 {
		return "", &domain.ValidationError{Reasons: []string{"email must be between 3 and 254 characters"}}
	}
	if !emailRe.MatchString(s) {
		return "", &domain.ValidationError{Reasons: []string{"invalid email format"}}
	}
	for _, tok := range operatorTokens {
		if strings.Contains(s, tok) {
			return "", &domain.ValidationError{Reasons: []string{"invalid characters detected in email"}}
		}
	}
	return s, nil
}

// Username trims and validates a username. The allowed alphabet already
// excludes operator characters; the explicit checks below keep the rejection
// list visible and guard against future regex loosening.
func Username(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 3 || len(s) > 30 {
		return "", &domain.ValidationError{Reasons: []string{"username must be between 3 and 30 characters"}}
	}
	if !usernameRe.MatchString(s) {
		return "", &domain.ValidationError{Reasons: []string{"username can only contain letters, numbers, underscore and hyphen"}}
	}
	if strings.ContainsAny(s, "${}[]") || strings.Contains(s, "..") ||
		strings.Contains(strings.ToLower(s), "<script") || strings.Contains(strings.ToLower(s), "javascript:") {
		return "", &domain.ValidationError{Reasons: []string{"invalid characters detected in username"}}
	}
	return s, nil
}

// Password validates a password without modifying it: no trimming, the
// literal value is what gets hashed. Bounds keep bcrypt input sane.
func Password(raw string) (string, error) {
	if len(raw) < 10 {
		return "", &domain.ValidationError{Reasons: []string{"password must be at least 10 characters long"}}
	}
	if len(raw) > 128 {
		return "", &domain.ValidationError{Reasons: []string{"password must not exceed 128 characters"}}
	}
	for _, r := range raw {
		if r < 0x20 || r == 0x7f {
			return "", &domain.ValidationError{Reasons: []string{"password contains invalid characters"}}
		}
	}
	return raw, nil
}

// AuthInput validates a login or registration body. Every field is checked
// before any error is raised so the caller gets the complete list of reasons
// in one response.
func AuthInput(in Input, register bool) (Fields, error) {
	var out Fields
	var reasons []string

	if register {
		if in.Username == "" {
			reasons = append(reasons, "username is required")
		} else if u, err := Username(in.Username); err != nil {
			reasons = append(reasons, validationReasons(err)...)
		} else {
			out.Username = u
		}
	}

	if in.Email == "" {
		reasons = append(reasons, "email is required")
	} else if e, err := Email(in.Email); err != nil {
		reasons = append(reasons, validationReasons(err)...)
	} else {
		out.Email = e
	}

	if in.Password == "" {
		reasons = append(reasons, "password is required")
	} else if p, err := Password(in.Password); err != nil {
		reasons = append(reasons, validationReasons(err)...)
	} else {
		out.Password = p
	}

	if len(reasons) > 0 {
		return Fields{}, &domain.ValidationError{Reasons: reasons}
	}
	return out, nil
}

// Map recursively strips leading '$' and '.' from every key of a nested
// structure. The current request schemas all bind into typed structs and the
// repositories build their filters from those, so no live path feeds raw maps
// into a query today; Map is the guard for any endpoint that ever accepts a
// free-form document.
func Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.TrimLeft(k, "$.")] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Map(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}

func validationReasons(err error) []string {
	if ve, ok := err.(*domain.ValidationError); ok {
		return ve.Reasons
	}
	return []string{err.Error()}
}
