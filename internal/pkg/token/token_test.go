package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestService_IssueAndVerify(t *testing.T) {
	svc := NewService("secret", time.Hour)

	raw, err := svc.Issue(Subject{ID: "user_1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	sub, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if sub.ID != "user_1" || sub.Email != "a@b.com" {
		t.Fatalf("unexpected subject: %+v", sub)
	}
}

func TestService_VerifyExpired(t *testing.T) {
	svc := NewService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, err := svc.Issue(Subject{ID: "user_1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(raw); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestService_VerifyWrongSecret(t *testing.T) {
	svc := NewService("secret", time.Hour)
	raw, _ := svc.Issue(Subject{ID: "user_1", Email: "a@b.com"})

	other := NewService("other-secret", time.Hour)
	if _, err := other.Verify(raw); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestService_VerifyTruncated(t *testing.T) {
	svc := NewService("secret", time.Hour)
	raw, _ := svc.Issue(Subject{ID: "user_1", Email: "a@b.com"})

	if _, err := svc.Verify(raw[:len(raw)-1]); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid for truncated token, got %v", err)
	}
}

func TestService_RejectsForeignAlgorithm(t *testing.T) {
	// Valid HS512 signature under the same secret must still be rejected:
	// only HS256 is in the accepted method set.
	claims := jwt.MapClaims{
		"id":  "user_1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := NewService("secret", time.Hour)
	if _, err := svc.Verify(raw); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid for HS512 token, got %v", err)
	}
}

func TestService_RejectsUnsigned(t *testing.T) {
	claims := jwt.MapClaims{
		"id":  "user_1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := NewService("secret", time.Hour)
	if _, err := svc.Verify(raw); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid for alg=none token, got %v", err)
	}
}

func TestService_NormalizesLegacyClaimShapes(t *testing.T) {
	for _, key := range []string{"_id", "userId"} {
		claims := jwt.MapClaims{
			key:     "user_legacy",
			"email": "a@b.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		svc := NewService("secret", time.Hour)
		sub, err := svc.Verify(raw)
		if err != nil {
			t.Fatalf("Verify(%s) returned error: %v", key, err)
		}
		if sub.ID != "user_legacy" {
			t.Fatalf("expected legacy %s claim folded into ID, got %+v", key, sub)
		}
	}
}
