package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

// CompanyHandler handles HTTP requests for companies.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// Create handles POST /companies.
//
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCompanyRequest  true  "Company details"
// @Success      201   {object}  companyResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	by, err := actor(c)
	if err != nil {
		return err
	}
	var req createCompanyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, err := h.service.Create(c.Request().Context(), by, ports.CreateCompanyInput{
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, companyResponse{Company: company})
}

// List handles GET /companies.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        search         query     string  false  "Case-insensitive substring of name or handle"
// @Param        min_employees  query     int     false  "Inclusive lower bound"
// @Param        max_employees  query     int     false  "Inclusive upper bound"
// @Success      200            {object}  companiesResponse
// @Failure      400            {object}  errorResponse
// @Failure      401            {object}  errorResponse
// @Router       /companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	var (
		filter         domain.CompanyFilter
		search         string
		minEmp, maxEmp int
	)
	err := echo.QueryParamsBinder(c).
		String("search", &search).
		Int("min_employees", &minEmp).
		Int("max_employees", &maxEmp).
		BindError()
	if err != nil {
		return domain.InvalidRequest("min_employees and max_employees must be integers")
	}

	q := c.QueryParams()
	if search != "" {
		filter.Search = &search
	}
	if q.Has("min_employees") {
		filter.MinEmployees = &minEmp
	}
	if q.Has("max_employees") {
		filter.MaxEmployees = &maxEmp
	}

	companies, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companiesResponse{Companies: companies})
}

// Get handles GET /companies/:handle.
//
// @Summary      Get a company with its jobs
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        handle  path      string  true  "Company handle"
// @Success      200     {object}  companyDetailResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /companies/{handle} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	company, err := h.service.Get(c.Request().Context(), c.Param("handle"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companyDetailResponse{Company: company})
}

// Update handles PATCH /companies/:handle.
//
// @Summary      Update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        handle  path      string          true  "Company handle"
// @Param        body    body      map[string]any  true  "Fields to change"
// @Success      200     {object}  companyResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /companies/{handle} [patch]
func (h *CompanyHandler) Update(c echo.Context) error {
	by, err := actor(c)
	if err != nil {
		return err
	}
	changes, err := decodeChanges(c.Request().Body, companyPatch)
	if err != nil {
		return err
	}

	company, err := h.service.Update(c.Request().Context(), by, c.Param("handle"), changes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companyResponse{Company: company})
}

// Delete handles DELETE /companies/:handle.
//
// @Summary      Delete a company and its jobs
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        handle  path      string  true  "Company handle"
// @Success      200     {object}  messageResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /companies/{handle} [delete]
func (h *CompanyHandler) Delete(c echo.Context) error {
	by, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), by, c.Param("handle")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Company deleted"})
}
