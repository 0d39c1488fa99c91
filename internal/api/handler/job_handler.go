package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

// JobHandler handles HTTP requests for jobs.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	by, err := actor(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), by, ports.CreateJobInput{
		Title:         req.Title,
		Salary:        *req.Salary,
		Equity:        *req.Equity,
		CompanyHandle: req.CompanyHandle,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, jobResponse{Job: job})
}

// List handles GET /jobs.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        search      query     string  false  "Case-insensitive substring of the title"
// @Param        min_salary  query     number  false  "Inclusive lower bound"
// @Param        min_equity  query     number  false  "Inclusive lower bound"
// @Success      200         {object}  jobsResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	var (
		filter               domain.JobFilter
		search               string
		minSalary, minEquity float64
	)
	err := echo.QueryParamsBinder(c).
		String("search", &search).
		Float64("min_salary", &minSalary).
		Float64("min_equity", &minEquity).
		BindError()
	if err != nil {
		return domain.InvalidRequest("min_salary and min_equity must be numbers")
	}

	q := c.QueryParams()
	if search != "" {
		filter.Search = &search
	}
	if q.Has("min_salary") {
		filter.MinSalary = &minSalary
	}
	if q.Has("min_equity") {
		filter.MinEquity = &minEquity
	}

	jobs, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobsResponse{Jobs: jobs})
}

// Get handles GET /jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	job, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobResponse{Job: job})
}

// Update handles PATCH /jobs/:id.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Job id"
// @Param        body  body      map[string]any  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /jobs/{id} [patch]
func (h *JobHandler) Update(c echo.Context) error {
	by, err := actor(c)
	if err != nil {
		return err
	}
	id, err := jobID(c)
	if err != nil {
		return err
	}
	changes, err := decodeChanges(c.Request().Body, jobPatch)
	if err != nil {
		return err
	}

	job, err := h.service.Update(c.Request().Context(), by, id, changes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobResponse{Job: job})
}

// Delete handles DELETE /jobs/:id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	by, err := actor(c)
	if err != nil {
		return err
	}
	id, err := jobID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), by, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Job deleted"})
}
