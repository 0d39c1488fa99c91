package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

// AuthService implements login.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger

	// decoy is the digest unknown usernames are verified against.
	decoyOnce sync.Once
	decoy     string
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Login verifies the password and returns a token for the stored identity.
// An unknown username and a wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.decoyDigest())
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.Password) {
		s.logger.Info().Str("username", username).Msg("login rejected")
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Identity())
}

func (s *AuthService) decoyDigest() string {
	s.decoyOnce.Do(func() {
		digest, err := s.hasher.Hash("jobly-decoy-password")
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to build decoy digest")
			return
		}
		s.decoy = digest
	})
	return s.decoy
}
