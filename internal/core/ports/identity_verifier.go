package ports

import (
	"context"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

// IdentityVerifier checks an external identity-provider token against the
// provider's certificate chain and expected audience. The core never touches
// signature material itself.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (domain.ExternalIdentity, error)
}
