package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/api/metrics"
	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

const (
	identityKey = "identity"
	// tokenParam is the query parameter accepted in place of the
	// Authorization header.
	tokenParam = "_token"
)

var errNoToken = fmt.Errorf("%w: missing token", domain.ErrUnauthorized)

// Gate validates access tokens and stores the verified identity in the echo
// context. Revocations is optional; without it the gate is stateless.
type Gate struct {
	tokens      ports.TokenIssuer
	revocations ports.RevocationList
	log         zerolog.Logger
}

func NewGate(tokens ports.TokenIssuer, revocations ports.RevocationList, log zerolog.Logger) *Gate {
	return &Gate{tokens: tokens, revocations: revocations, log: log}
}

// Authenticated admits any caller holding a valid token.
func (g *Gate) Authenticated() echo.MiddlewareFunc {
	return g.middleware("authenticated", false)
}

// Admin admits only callers whose token carries is_admin. A valid token
// without it is Forbidden rather than Unauthorized.
func (g *Gate) Admin() echo.MiddlewareFunc {
	return g.middleware("admin", true)
}

// Optional verifies a token when one is presented and lets anonymous
// requests through. A presented but invalid token is still rejected.
func (g *Gate) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, outcome, err := g.identify(c)
			if errors.Is(err, errNoToken) {
				return next(c)
			}
			metrics.GateDecisionsTotal.WithLabelValues("optional", outcome).Inc()
			if err != nil {
				return err
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

func (g *Gate) middleware(gate string, requireAdmin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, outcome, err := g.identify(c)
			if err == nil && requireAdmin && !id.IsAdmin {
				outcome, err = "forbidden", fmt.Errorf("%w: admin required", domain.ErrForbidden)
			}
			metrics.GateDecisionsTotal.WithLabelValues(gate, outcome).Inc()
			if err != nil {
				return err
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// identify extracts and verifies the token. The returned outcome labels the
// gate decision metric.
func (g *Gate) identify(c echo.Context) (domain.Identity, string, error) {
	raw, err := tokenFrom(c)
	if err != nil {
		return domain.Identity{}, "unauthorized", err
	}

	id, err := g.tokens.Verify(raw)
	if err != nil {
		return domain.Identity{}, "unauthorized", err
	}

	if g.revocations != nil {
		revoked, err := g.revocations.IsRevoked(c.Request().Context(), id)
		if err != nil {
			g.log.Error().Err(err).Str("username", id.Username).Msg("revocation check failed")
			return domain.Identity{}, "error", fmt.Errorf("gate: %w", err)
		}
		if revoked {
			return domain.Identity{}, "revoked", fmt.Errorf("%w: token revoked", domain.ErrUnauthorized)
		}
	}

	return id, "allowed", nil
}

// tokenFrom reads "Authorization: Bearer <token>" or, failing that, the
// _token query parameter.
func tokenFrom(c echo.Context) (string, error) {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", fmt.Errorf("%w: invalid authorization header", domain.ErrUnauthorized)
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if token := c.QueryParam(tokenParam); token != "" {
		return token, nil
	}
	return "", errNoToken
}

// SetIdentity stores a verified identity for downstream handlers.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by the gate, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
