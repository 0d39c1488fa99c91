package ports

import (
	"context"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

// CompanyRepository persists companies.
type CompanyRepository interface {
	// Insert stores c under c.Handle. It returns domain.ErrCompanyExists when
	// the handle is already taken.
	Insert(ctx context.Context, c *domain.Company) (*domain.Company, error)
	FindByHandle(ctx context.Context, handle string) (*domain.Company, error)
	List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error)
	// Update applies changes in order and returns the updated row.
	Update(ctx context.Context, handle string, changes domain.Changes) (*domain.Company, error)
	Delete(ctx context.Context, handle string) error
}

// JobRepository persists jobs.
type JobRepository interface {
	Insert(ctx context.Context, j *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id int64) (*domain.Job, error)
	List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	ListByCompany(ctx context.Context, handle string) ([]domain.Job, error)
	Update(ctx context.Context, id int64, changes domain.Changes) (*domain.Job, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository persists users.
type UserRepository interface {
	// Insert returns domain.ErrUserExists when the username is taken.
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, username string, changes domain.Changes) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}

// AuditRepository appends audit entries to durable storage.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
