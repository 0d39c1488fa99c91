package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/infrastructure/security"
)

type stubRevocations struct {
	revoked map[domain.Identity]bool
	err     error
}

func (s *stubRevocations) Revoke(context.Context, ...domain.Identity) error  { return nil }
func (s *stubRevocations) Restore(context.Context, ...domain.Identity) error { return nil }
func (s *stubRevocations) IsRevoked(_ context.Context, id domain.Identity) (bool, error) {
	return s.revoked[id], s.err
}

func newIssuer(t *testing.T) *security.JWTIssuer {
	t.Helper()
	issuer, err := security.NewJWTIssuer([]byte("secret"))
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	return issuer
}

func sign(t *testing.T, issuer *security.JWTIssuer, id domain.Identity) string {
	t.Helper()
	token, err := issuer.Issue(id)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// run invokes mw around a handler that records the identity it saw.
func run(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (domain.Identity, bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		seen   domain.Identity
		called bool
	)
	err := mw(func(c echo.Context) error {
		called = true
		seen, _ = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return seen, called, err
}

func bearer(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestGate_Authenticated_ValidToken(t *testing.T) {
	issuer := newIssuer(t)
	gate := NewGate(issuer, nil, zerolog.Nop())

	id, called, err := run(t, gate.Authenticated(), bearer(sign(t, issuer, domain.Identity{Username: "alice"})))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if id.Username != "alice" || id.IsAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestGate_Authenticated_QueryToken(t *testing.T) {
	issuer := newIssuer(t)
	gate := NewGate(issuer, nil, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/?_token="+sign(t, issuer, domain.Identity{Username: "bob"}), nil)

	id, called, err := run(t, gate.Authenticated(), req)
	if err != nil || !called || id.Username != "bob" {
		t.Fatalf("expected bob to pass, got %+v called=%v err=%v", id, called, err)
	}
}

func TestGate_Rejections(t *testing.T) {
	issuer := newIssuer(t)
	other, _ := security.NewJWTIssuer([]byte("other-secret"))
	foreign, _ := other.Issue(domain.Identity{Username: "alice", IsAdmin: true})
	user := sign(t, issuer, domain.Identity{Username: "alice"})

	noAuth := httptest.NewRequest(http.MethodGet, "/", nil)
	basic := httptest.NewRequest(http.MethodGet, "/", nil)
	basic.Header.Set("Authorization", "Basic YWxpY2U6cGFzcw==")

	tests := []struct {
		name  string
		admin bool
		req   *http.Request
		want  error
	}{
		{"no token", false, noAuth, domain.ErrUnauthorized},
		{"no token on admin gate", true, noAuth, domain.ErrUnauthorized},
		{"wrong scheme", false, basic, domain.ErrUnauthorized},
		{"garbage", false, bearer("not-a-token"), domain.ErrUnauthorized},
		{"foreign signature", true, bearer(foreign), domain.ErrUnauthorized},
		{"non-admin on admin gate", true, bearer(user), domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(issuer, nil, zerolog.Nop())
			mw := gate.Authenticated()
			if tt.admin {
				mw = gate.Admin()
			}

			_, called, err := run(t, mw, tt.req)
			if called {
				t.Fatalf("next must not be called")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGate_Admin_PassesWithClaims(t *testing.T) {
	issuer := newIssuer(t)
	gate := NewGate(issuer, nil, zerolog.Nop())

	id, called, err := run(t, gate.Admin(), bearer(sign(t, issuer, domain.Identity{Username: "root", IsAdmin: true})))
	if err != nil || !called {
		t.Fatalf("expected admin to pass, err=%v", err)
	}
	if id != (domain.Identity{Username: "root", IsAdmin: true}) {
		t.Fatalf("claims not available downstream: %+v", id)
	}
}

func TestGate_RevokedIdentity(t *testing.T) {
	issuer := newIssuer(t)
	demoted := domain.Identity{Username: "root", IsAdmin: true}
	gate := NewGate(issuer, &stubRevocations{revoked: map[domain.Identity]bool{demoted: true}}, zerolog.Nop())

	_, called, err := run(t, gate.Admin(), bearer(sign(t, issuer, demoted)))
	if called || !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected revoked token to be unauthorized, called=%v err=%v", called, err)
	}

	// The same user's current identity is unaffected.
	_, called, err = run(t, gate.Authenticated(), bearer(sign(t, issuer, domain.Identity{Username: "root"})))
	if err != nil || !called {
		t.Fatalf("expected current identity to pass, err=%v", err)
	}
}

func TestGate_RevocationStoreErrorFailsClosed(t *testing.T) {
	issuer := newIssuer(t)
	boom := errors.New("redis down")
	gate := NewGate(issuer, &stubRevocations{err: boom}, zerolog.Nop())

	_, called, err := run(t, gate.Authenticated(), bearer(sign(t, issuer, domain.Identity{Username: "alice"})))
	if called {
		t.Fatalf("next must not be called")
	}
	if !errors.Is(err, boom) || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestGate_Optional(t *testing.T) {
	issuer := newIssuer(t)
	gate := NewGate(issuer, nil, zerolog.Nop())

	_, called, err := run(t, gate.Optional(), httptest.NewRequest(http.MethodPost, "/", nil))
	if err != nil || !called {
		t.Fatalf("anonymous request should pass, err=%v", err)
	}

	id, called, err := run(t, gate.Optional(), bearer(sign(t, issuer, domain.Identity{Username: "root", IsAdmin: true})))
	if err != nil || !called || !id.IsAdmin {
		t.Fatalf("expected admin identity, got %+v err=%v", id, err)
	}

	_, called, err = run(t, gate.Optional(), bearer("tampered"))
	if called || !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("invalid token must be rejected, err=%v", err)
	}
}
