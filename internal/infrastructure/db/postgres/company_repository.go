package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
	"github.com/sirpyerre/jobly/internal/pkg/sqlbuild"
)

var companyTable = sqlbuild.Table{
	Name:      "company",
	Key:       domain.CompanyKey,
	Columns:   []string{"handle", "name", "description", "num_employees", "logo_url"},
	Updatable: []string{"name", "description", "num_employees", "logo_url"},
}

// CompanyRepository implements ports.CompanyRepository using PostgreSQL.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(db *sqlx.DB) ports.CompanyRepository {
	return &CompanyRepository{db: db}
}

// Insert stores the company unless the handle is taken, in which case
// ErrCompanyExists is returned and nothing is written.
func (r *CompanyRepository) Insert(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	const query = `INSERT INTO company (handle, name, description, num_employees, logo_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (handle) DO NOTHING
RETURNING handle, name, description, num_employees, logo_url`

	var out domain.Company
	err := r.db.QueryRowxContext(ctx, query, c.Handle, c.Name, c.Description, c.NumEmployees, c.LogoURL).StructScan(&out)
	if err != nil {
		return nil, translate("insert company", err, domain.ErrCompanyExists)
	}
	return &out, nil
}

func (r *CompanyRepository) FindByHandle(ctx context.Context, handle string) (*domain.Company, error) {
	query, args, err := companyTable.Select().Where("handle", sqlbuild.Eq, handle).Build()
	if err != nil {
		return nil, builderError(err)
	}

	var out domain.Company
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		return nil, translate("find company", err, domain.ErrCompanyNotFound)
	}
	return &out, nil
}

// List matches search case-insensitively against name or handle. Employee
// bounds are inclusive.
func (r *CompanyRepository) List(ctx context.Context, f domain.CompanyFilter) ([]domain.Company, error) {
	b := companyTable.Select()
	if f.Search != nil {
		b.WhereAny([]string{"name", "handle"}, sqlbuild.ILike, sqlbuild.ContainsPattern(*f.Search))
	}
	if f.MinEmployees != nil {
		b.Where("num_employees", sqlbuild.Gte, *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		b.Where("num_employees", sqlbuild.Lte, *f.MaxEmployees)
	}
	query, args, err := b.OrderBy("name").Build()
	if err != nil {
		return nil, builderError(err)
	}

	out := []domain.Company{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, translate("list companies", err, domain.ErrCompanyNotFound)
	}
	return out, nil
}

func (r *CompanyRepository) Update(ctx context.Context, handle string, changes domain.Changes) (*domain.Company, error) {
	query, args, err := companyTable.Update(toAssignments(changes), handle)
	if err != nil {
		return nil, builderError(err)
	}

	var out domain.Company
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		return nil, translate("update company", err, domain.ErrCompanyNotFound)
	}
	return &out, nil
}

// Delete removes the company; its jobs go with it.
func (r *CompanyRepository) Delete(ctx context.Context, handle string) error {
	return deleteRow(ctx, r.db, `DELETE FROM company WHERE handle = $1`, handle, domain.ErrCompanyNotFound)
}

func deleteRow(ctx context.Context, db *sqlx.DB, query string, key any, notFound error) error {
	res, err := db.ExecContext(ctx, query, key)
	if err != nil {
		return translate("delete", err, notFound)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate("delete", err, notFound)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

