package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/socialdash/dashboard-api/internal/core/domain"
	"github.com/socialdash/dashboard-api/internal/core/ports"
	"github.com/socialdash/dashboard-api/internal/core/sanitize"
	"github.com/socialdash/dashboard-api/internal/pkg/token"
)

// AuthService implements registration, login and the Google login exchange.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	hasher   ports.PasswordHasher
	verifier ports.IdentityVerifier
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, hasher ports.PasswordHasher, verifier ports.IdentityVerifier, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, verifier: verifier, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	fields, err := sanitize.AuthInput(sanitize.Input{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}, true)
	if err != nil {
		return nil, err
	}

	// Pre-check so the conflict message can say which field collided. The
	// unique indexes still close the race between check and insert.
	existing, err := s.users.FindByEmailOrUsername(ctx, fields.Email, fields.Username)
	if err != nil && err != domain.ErrUserNotFound {
		return nil, err
	}
	if existing != nil {
		if existing.Email == fields.Email {
			return nil, domain.ErrEmailTaken
		}
		return nil, domain.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(fields.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     fields.Username,
		Email:        fields.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("event", "USER_REGISTERED").
		Str("user_id", created.ID).
		Str("username", created.Username).
		Msg("user registered")
	return created, nil
}

// Login authenticates by email or legacy username identifier. Unknown
// identifier, missing stored hash and hash mismatch all collapse into the
// same ErrInvalidCredentials so responses cannot be used to enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	user, err := s.lookupByIdentifier(ctx, in)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	tkn, err := s.tokens.Issue(token.Subject{ID: user.ID, Email: user.Email})
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("event", "USER_LOGIN").
		Str("user_id", user.ID).
		Msg("user logged in")
	return tkn, nil
}

func (s *AuthService) lookupByIdentifier(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	if in.Email != "" {
		fields, err := sanitize.AuthInput(sanitize.Input{Email: in.Email, Password: in.Password}, false)
		if err != nil {
			return nil, err
		}
		return s.users.FindByEmail(ctx, fields.Email)
	}

	// Legacy clients send the identifier under "username".
	username, err := sanitize.Username(in.Username)
	if err != nil {
		return nil, err
	}
	if _, err := sanitize.Password(in.Password); err != nil {
		return nil, err
	}
	return s.users.FindByUsername(ctx, username)
}

// GoogleLogin exchanges a verified Google ID token for an internal one,
// creating or linking the local account as needed.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (string, *domain.User, error) {
	ident, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		s.log.Warn().
			Str("event", "OAUTH_VERIFY_FAILED").
			Err(err).
			Msg("google token verification failed")
		return "", nil, domain.ErrInvalidCredentials
	}

	s.log.Info().
		Str("event", "OAUTH_TOKEN_VERIFIED").
		Str("email", ident.Email).
		Str("google_id", ident.Subject).
		Msg("google token verified")

	user, err := s.users.FindByEmail(ctx, ident.Email)
	switch {
	case err == domain.ErrUserNotFound:
		user, err = s.users.Create(ctx, &domain.User{
			Username: deriveUsername(ident),
			Email:    ident.Email,
			GoogleID: ident.Subject,
			Role:     domain.RoleUser,
		})
		if err != nil {
			return "", nil, err
		}
		s.log.Info().
			Str("event", "OAUTH_USER_CREATED").
			Str("user_id", user.ID).
			Str("username", user.Username).
			Msg("new user created via google login")
	case err != nil:
		return "", nil, err
	case user.GoogleID == "":
		if err := s.users.LinkGoogleID(ctx, user.ID, ident.Subject); err != nil {
			return "", nil, err
		}
		user.GoogleID = ident.Subject
		s.log.Info().
			Str("event", "OAUTH_ACCOUNT_LINKED").
			Str("user_id", user.ID).
			Msg("google id linked to existing user")
	}

	tkn, err := s.tokens.Issue(token.Subject{ID: user.ID, Email: user.Email})
	if err != nil {
		return "", nil, err
	}

	s.log.Info().
		Str("event", "OAUTH_SUCCESS").
		Str("user_id", user.ID).
		Msg("google login successful")
	return tkn, user, nil
}

// deriveUsername builds a username from the provider display name (whitespace
// collapsed to underscores, lowercased), falling back to the email local part
// when the name is empty.
func deriveUsername(ident domain.ExternalIdentity) string {
	name := strings.ToLower(strings.Join(strings.Fields(ident.DisplayName), "_"))
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(ident.Email, "@")
	return local
}
