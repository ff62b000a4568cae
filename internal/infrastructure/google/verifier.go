// Package google verifies Google ID tokens against the provider's published
// certificates. It is the external collaborator behind the federated login
// exchange; nothing outside this package touches signature material.
package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

const issuer = "https://accounts.google.com"

// Verifier checks Google-issued ID tokens for signature, issuer, expiry and
// audience.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier discovers the Google OIDC configuration and pins the expected
// audience to clientID. It performs network I/O for the discovery document.
func NewVerifier(ctx context.Context, clientID string) (*Verifier, error) {
	if clientID == "" {
		return nil, errors.New("google client id is required")
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("google oidc discovery: %w", err)
	}

	return &Verifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Verify validates idToken and extracts the identity fields the core needs.
func (v *Verifier) Verify(ctx context.Context, idToken string) (domain.ExternalIdentity, error) {
	tkn, err := v.verifier.Verify(ctx, idToken)
	if err != nil {
		return domain.ExternalIdentity{}, fmt.Errorf("verify google token: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := tkn.Claims(&claims); err != nil {
		return domain.ExternalIdentity{}, fmt.Errorf("decode google claims: %w", err)
	}
	if claims.Email == "" {
		return domain.ExternalIdentity{}, errors.New("google token carries no email")
	}

	return domain.ExternalIdentity{
		Subject:     tkn.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}
