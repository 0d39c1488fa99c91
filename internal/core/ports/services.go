package ports

import (
	"context"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

// AuthService exchanges credentials for an access token.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// CreateCompanyInput carries the fields of a new company. The handle is
// derived from Name.
type CreateCompanyInput struct {
	Name         string
	Description  *string
	NumEmployees *int
	LogoURL      *string
}

// CompanyService defines company use cases. Actor is the verified caller.
type CompanyService interface {
	Create(ctx context.Context, actor domain.Identity, in CreateCompanyInput) (*domain.Company, error)
	Get(ctx context.Context, handle string) (*domain.CompanyDetail, error)
	List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error)
	Update(ctx context.Context, actor domain.Identity, handle string, changes domain.Changes) (*domain.Company, error)
	Delete(ctx context.Context, actor domain.Identity, handle string) error
}

// CreateJobInput carries the fields of a new job.
type CreateJobInput struct {
	Title         string
	Salary        float64
	Equity        float64
	CompanyHandle string
}

// JobService defines job use cases.
type JobService interface {
	Create(ctx context.Context, actor domain.Identity, in CreateJobInput) (*domain.Job, error)
	Get(ctx context.Context, id int64) (*domain.Job, error)
	List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	Update(ctx context.Context, actor domain.Identity, id int64, changes domain.Changes) (*domain.Job, error)
	Delete(ctx context.Context, actor domain.Identity, id int64) error
}

// RegisterUserInput carries signup fields. IsAdmin is honoured only when the
// actor is an admin.
type RegisterUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	PhotoURL  *string
	IsAdmin   bool
}

// UserService defines user use cases.
type UserService interface {
	// Register creates the account and returns it with a fresh token. actor
	// is nil for anonymous signup.
	Register(ctx context.Context, actor *domain.Identity, in RegisterUserInput) (*domain.User, string, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, actor domain.Identity, username string, changes domain.Changes) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Identity, username string) error
}
