package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

const (
	fieldPassword = "password"
	fieldIsAdmin  = "is_admin"
)

type UserService struct {
	auditor
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	revocations ports.RevocationList // nil when revocation is disabled
	logger      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revocations ports.RevocationList,
	sink ports.AuditSink,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		auditor:     auditor{sink: sink},
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
	}
}

// both returns the two identities a username can appear under in a token.
func both(username string) []domain.Identity {
	return []domain.Identity{{Username: username}, {Username: username, IsAdmin: true}}
}

func (s *UserService) Register(ctx context.Context, actor *domain.Identity, in ports.RegisterUserInput) (*domain.User, string, error) {
	if in.IsAdmin && (actor == nil || !actor.IsAdmin) {
		return nil, "", fmt.Errorf("%w: only admins can create admin accounts", domain.ErrForbidden)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Insert(ctx, &domain.User{
		Username:  in.Username,
		Password:  digest,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		PhotoURL:  in.PhotoURL,
		IsAdmin:   in.IsAdmin,
	})
	if err != nil {
		return nil, "", err
	}

	// A previous account with the same username may have been revoked.
	if s.revocations != nil {
		if err := s.revocations.Restore(ctx, both(user.Username)...); err != nil {
			s.logger.Error().Err(err).Str("username", user.Username).Msg("failed to clear revocation for new account")
		}
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, "", err
	}

	var by domain.Identity
	if actor != nil {
		by = *actor
	}
	s.logger.Info().Str("username", user.Username).Bool("is_admin", user.IsAdmin).Msg("user registered")
	s.audit(by, domain.AuditCreate, "user", user.Username, nil)
	return user, token, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Update lets a user edit their own account and an admin edit any account.
// Only admins may change is_admin. A new password is hashed before the
// statement is built.
func (s *UserService) Update(ctx context.Context, actor domain.Identity, username string, changes domain.Changes) (*domain.User, error) {
	if err := checkChanges(changes, domain.UserKey); err != nil {
		return nil, err
	}
	if !actor.CanActOn(username) {
		return nil, domain.ErrForbidden
	}
	if changes.Has(fieldIsAdmin) && !actor.IsAdmin {
		return nil, fmt.Errorf("%w: only admins can change is_admin", domain.ErrForbidden)
	}

	if v, ok := changes.Get(fieldPassword); ok {
		plaintext, isString := v.(string)
		if !isString {
			return nil, domain.InvalidRequest("password must be a string")
		}
		digest, err := s.hasher.Hash(plaintext)
		if err != nil {
			return nil, err
		}
		changes = slices.Clone(changes)
		changes.Replace(fieldPassword, digest)
	}

	var before *domain.User
	if changes.Has(fieldIsAdmin) && s.revocations != nil {
		current, err := s.users.FindByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		before = current
	}

	user, err := s.users.Update(ctx, username, changes)
	if err != nil {
		return nil, err
	}

	if before != nil && before.IsAdmin != user.IsAdmin {
		if err := s.swapIdentity(ctx, before.Identity(), user.Identity()); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Str("username", username).Strs("fields", changes.Fields()).Msg("user updated")
	s.audit(actor, domain.AuditUpdate, "user", username, changes.Fields())
	return user, nil
}

// swapIdentity revokes tokens carrying the old privilege level and accepts
// tokens carrying the new one.
func (s *UserService) swapIdentity(ctx context.Context, old, current domain.Identity) error {
	if err := s.revocations.Revoke(ctx, old); err != nil {
		s.logger.Error().Err(err).Str("username", old.Username).Msg("failed to revoke previous identity")
		return fmt.Errorf("revoke previous identity: %w", err)
	}
	if err := s.revocations.Restore(ctx, current); err != nil {
		s.logger.Error().Err(err).Str("username", current.Username).Msg("failed to restore identity")
		return fmt.Errorf("restore identity: %w", err)
	}
	return nil
}

// Delete removes the account and revokes every token issued for it.
func (s *UserService) Delete(ctx context.Context, actor domain.Identity, username string) error {
	if !actor.CanActOn(username) {
		return domain.ErrForbidden
	}
	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}

	if s.revocations != nil {
		if err := s.revocations.Revoke(ctx, both(username)...); err != nil {
			s.logger.Error().Err(err).Str("username", username).Msg("failed to revoke deleted user")
			return fmt.Errorf("revoke deleted user: %w", err)
		}
	}

	s.logger.Info().Str("username", username).Msg("user deleted")
	s.audit(actor, domain.AuditDelete, "user", username, nil)
	return nil
}
