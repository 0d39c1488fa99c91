package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
	"github.com/sirpyerre/jobly/internal/pkg/sqlbuild"
)

var jobTable = sqlbuild.Table{
	Name:      "job",
	Key:       domain.JobKey,
	Columns:   []string{"id", "title", "salary", "equity", "company_handle", "date_posted"},
	Updatable: []string{"title", "salary", "equity"},
}

// JobRepository implements ports.JobRepository using PostgreSQL.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sqlx.DB) ports.JobRepository {
	return &JobRepository{db: db}
}

// Insert stores the job. A reference to a missing company is reported as
// an invalid request.
func (r *JobRepository) Insert(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	const query = `INSERT INTO job (title, salary, equity, company_handle)
VALUES ($1, $2, $3, $4)
RETURNING id, title, salary, equity, company_handle, date_posted`

	var out domain.Job
	if err := r.db.QueryRowxContext(ctx, query, j.Title, j.Salary, j.Equity, j.CompanyHandle).StructScan(&out); err != nil {
		return nil, translate("insert job", err, domain.ErrJobNotFound)
	}
	return &out, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id int64) (*domain.Job, error) {
	query, args, err := jobTable.Select().Where("id", sqlbuild.Eq, id).Build()
	if err != nil {
		return nil, builderError(err)
	}

	var out domain.Job
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		return nil, translate("find job", err, domain.ErrJobNotFound)
	}
	return &out, nil
}

// List matches search case-insensitively against the title. Salary and
// equity bounds are inclusive lower bounds.
func (r *JobRepository) List(ctx context.Context, f domain.JobFilter) ([]domain.Job, error) {
	b := jobTable.Select()
	if f.Search != nil {
		b.Where("title", sqlbuild.ILike, sqlbuild.ContainsPattern(*f.Search))
	}
	if f.MinSalary != nil {
		b.Where("salary", sqlbuild.Gte, *f.MinSalary)
	}
	if f.MinEquity != nil {
		b.Where("equity", sqlbuild.Gte, *f.MinEquity)
	}
	query, args, err := b.OrderBy("title", "id").Build()
	if err != nil {
		return nil, builderError(err)
	}

	out := []domain.Job{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, translate("list jobs", err, domain.ErrJobNotFound)
	}
	return out, nil
}

func (r *JobRepository) ListByCompany(ctx context.Context, handle string) ([]domain.Job, error) {
	query, args, err := jobTable.Select().Where("company_handle", sqlbuild.Eq, handle).OrderBy("id").Build()
	if err != nil {
		return nil, builderError(err)
	}

	out := []domain.Job{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, translate("list company jobs", err, domain.ErrJobNotFound)
	}
	return out, nil
}

func (r *JobRepository) Update(ctx context.Context, id int64, changes domain.Changes) (*domain.Job, error) {
	query, args, err := jobTable.Update(toAssignments(changes), id)
	if err != nil {
		return nil, builderError(err)
	}

	var out domain.Job
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		return nil, translate("update job", err, domain.ErrJobNotFound)
	}
	return &out, nil
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, r.db, `DELETE FROM job WHERE id = $1`, id, domain.ErrJobNotFound)
}
