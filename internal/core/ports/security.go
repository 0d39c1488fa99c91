package ports

import (
	"context"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

// PasswordHasher is a one-way password hash with a fixed work factor.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer creates and verifies stateless access tokens.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
	Verify(token string) (domain.Identity, error)
}

// RevocationList tracks identities whose previously issued tokens must no
// longer pass the access gate.
type RevocationList interface {
	Revoke(ctx context.Context, ids ...domain.Identity) error
	Restore(ctx context.Context, ids ...domain.Identity) error
	IsRevoked(ctx context.Context, id domain.Identity) (bool, error)
}
