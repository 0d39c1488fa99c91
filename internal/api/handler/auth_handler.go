package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
	"github.com/sirpyerre/jobly/pkg/logger"
)

// AuthHandler serves the token endpoint.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login exchanges a username and password for a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, err := h.auth.Login(ctx, req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		log := logger.FromContext(ctx)
		log.Warn().Str("username", req.Username).Str("remote_ip", c.RealIP()).Msg("login rejected")
		return err
	}
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, authResponse{Token: token})
}
