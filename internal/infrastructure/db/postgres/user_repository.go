package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
	"github.com/sirpyerre/jobly/internal/pkg/sqlbuild"
)

var userTable = sqlbuild.Table{
	Name:      "users",
	Key:       domain.UserKey,
	Columns:   []string{"username", "password", "first_name", "last_name", "email", "photo_url", "is_admin"},
	Updatable: []string{"password", "first_name", "last_name", "email", "photo_url", "is_admin"},
}

// UserRepository implements ports.UserRepository using PostgreSQL.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

// Insert stores the user. A taken username or email yields ErrUserExists.
func (r *UserRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	const query = `INSERT INTO users (username, password, first_name, last_name, email, photo_url, is_admin)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING username, password, first_name, last_name, email, photo_url, is_admin`

	var out domain.User
	err := r.db.QueryRowxContext(ctx, query,
		u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.PhotoURL, u.IsAdmin,
	).StructScan(&out)
	if err != nil {
		if sqlState(err) == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, translate("insert user", err, domain.ErrUserNotFound)
	}
	return &out, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query, args, err := userTable.Select().Where("username", sqlbuild.Eq, username).Build()
	if err != nil {
		return nil, builderError(err)
	}

	var out domain.User
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		return nil, translate("find user", err, domain.ErrUserNotFound)
	}
	return &out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	query, args, err := userTable.Select().OrderBy("username").Build()
	if err != nil {
		return nil, builderError(err)
	}

	out := []domain.User{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, translate("list users", err, domain.ErrUserNotFound)
	}
	return out, nil
}

// Update applies the changes. A clash on email yields ErrUserExists.
func (r *UserRepository) Update(ctx context.Context, username string, changes domain.Changes) (*domain.User, error) {
	query, args, err := userTable.Update(toAssignments(changes), username)
	if err != nil {
		return nil, builderError(err)
	}

	var out domain.User
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		if sqlState(err) == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, translate("update user", err, domain.ErrUserNotFound)
	}
	return &out, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	return deleteRow(ctx, r.db, `DELETE FROM users WHERE username = $1`, username, domain.ErrUserNotFound)
}
