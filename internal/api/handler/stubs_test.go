package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/jobly/internal/api/middleware"
	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

type stubUserService struct {
	registerFn func(ctx context.Context, actor *domain.Identity, in ports.RegisterUserInput) (*domain.User, string, error)
	updateFn   func(ctx context.Context, actor domain.Identity, username string, changes domain.Changes) (*domain.User, error)
	deleteFn   func(ctx context.Context, actor domain.Identity, username string) error
}

func (s *stubUserService) Register(ctx context.Context, actor *domain.Identity, in ports.RegisterUserInput) (*domain.User, string, error) {
	return s.registerFn(ctx, actor, in)
}

func (s *stubUserService) Get(_ context.Context, username string) (*domain.User, error) {
	return &domain.User{Username: username}, nil
}

func (s *stubUserService) List(context.Context) ([]domain.User, error) {
	return []domain.User{{Username: "alice"}}, nil
}

func (s *stubUserService) Update(ctx context.Context, actor domain.Identity, username string, changes domain.Changes) (*domain.User, error) {
	return s.updateFn(ctx, actor, username, changes)
}

func (s *stubUserService) Delete(ctx context.Context, actor domain.Identity, username string) error {
	return s.deleteFn(ctx, actor, username)
}

type stubCompanyService struct {
	createFn func(ctx context.Context, actor domain.Identity, in ports.CreateCompanyInput) (*domain.Company, error)
	listFn   func(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error)
	updateFn func(ctx context.Context, actor domain.Identity, handle string, changes domain.Changes) (*domain.Company, error)
}

func (s *stubCompanyService) Create(ctx context.Context, actor domain.Identity, in ports.CreateCompanyInput) (*domain.Company, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubCompanyService) Get(_ context.Context, handle string) (*domain.CompanyDetail, error) {
	if handle == "ghost" {
		return nil, domain.ErrCompanyNotFound
	}
	return &domain.CompanyDetail{Company: domain.Company{Handle: handle}, Jobs: []domain.Job{}}, nil
}

func (s *stubCompanyService) List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCompanyService) Update(ctx context.Context, actor domain.Identity, handle string, changes domain.Changes) (*domain.Company, error) {
	return s.updateFn(ctx, actor, handle, changes)
}

func (s *stubCompanyService) Delete(context.Context, domain.Identity, string) error {
	return nil
}

type stubJobService struct {
	createFn func(ctx context.Context, actor domain.Identity, in ports.CreateJobInput) (*domain.Job, error)
	listFn   func(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	getFn    func(ctx context.Context, id int64) (*domain.Job, error)
}

func (s *stubJobService) Create(ctx context.Context, actor domain.Identity, in ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubJobService) Get(ctx context.Context, id int64) (*domain.Job, error) {
	return s.getFn(ctx, id)
}

func (s *stubJobService) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	return s.listFn(ctx, filter)
}

func (s *stubJobService) Update(context.Context, domain.Identity, int64, domain.Changes) (*domain.Job, error) {
	return &domain.Job{}, nil
}

func (s *stubJobService) Delete(context.Context, domain.Identity, int64) error {
	return nil
}

var (
	adminID = domain.Identity{Username: "root", IsAdmin: true}
	aliceID = domain.Identity{Username: "alice"}
)

// newContext builds an echo context with a JSON body. A non-nil identity is
// stored as if the gate had verified it.
func newContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		middleware.SetIdentity(c, *id)
	}
	return c, rec
}

