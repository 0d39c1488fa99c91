// Package security holds the credential hasher and the access token
// issuer/verifier.
package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

// tokenClaims is exactly {username, is_admin}. The embedded registered
// claims are all omitempty and never set, so nothing else is encoded.
type tokenClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 tokens with a shared secret.
type JWTIssuer struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTIssuer requires a non-empty secret.
func NewJWTIssuer(secret []byte) (*JWTIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &JWTIssuer{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Issue signs the identity. Equal identities yield equal tokens.
func (j *JWTIssuer) Issue(id domain.Identity) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
	})
	signed, err := t.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and returns the embedded identity. Any failure
// is reported as domain.ErrUnauthorized.
func (j *JWTIssuer) Verify(token string) (domain.Identity, error) {
	var claims tokenClaims
	parsed, err := j.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Identity{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	if claims.Username == "" {
		return domain.Identity{}, fmt.Errorf("%w: token missing username", domain.ErrUnauthorized)
	}
	return domain.Identity{Username: claims.Username, IsAdmin: claims.IsAdmin}, nil
}
