package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/jobly/internal/api/middleware"
	"github.com/sirpyerre/jobly/internal/core/domain"
)

// actor returns the identity verified by the gate. Its absence means the
// route was registered without a gate, which is reported as Unauthorized
// rather than trusted.
func actor(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: missing identity", domain.ErrUnauthorized)
	}
	return id, nil
}

func jobID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.InvalidRequest("job id must be a positive integer")
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.InvalidRequest("invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return domain.InvalidRequest("%s", err.Error())
	}
	return nil
}
