// Package sqlbuild composes parameterized PostgreSQL statements from
// caller-supplied column names and values.
//
// Values are always bound as positional parameters. Column names are only
// accepted when they appear in the Table's allow-list, and are quoted with
// pq.QuoteIdentifier before they reach the statement text.
package sqlbuild

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNoAssignments   = errors.New("sqlbuild: no columns to update")
	ErrKeyAssignment   = errors.New("sqlbuild: key column cannot be assigned")
	ErrUnknownColumn   = errors.New("sqlbuild: unknown column")
	ErrDuplicateColumn = errors.New("sqlbuild: column assigned twice")
	ErrUnknownOperator = errors.New("sqlbuild: unknown operator")
)

// Table describes one relation and the identifiers callers may use with it.
type Table struct {
	Name string
	// Key is the primary key column. It is never assignable.
	Key string
	// Columns is the full row, in the order it is selected and returned.
	Columns []string
	// Updatable lists the columns a partial update may assign.
	Updatable []string
}

// Assignment sets Column to Value.
type Assignment struct {
	Column string
	Value  any
}

func (t Table) quotedColumns() string {
	quoted := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

func (t Table) hasColumn(column string) bool {
	return slices.Contains(t.Columns, column)
}

// Update returns an UPDATE statement that assigns exactly the given columns,
// in the given order, filters on the key column and returns the whole
// updated row. Placeholders are numbered from $1 in assignment order; the key
// placeholder comes last and the returned values follow the same order.
func (t Table) Update(assignments []Assignment, keyValue any) (string, []any, error) {
	if len(assignments) == 0 {
		return "", nil, ErrNoAssignments
	}

	sets := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)+1)
	seen := make(map[string]struct{}, len(assignments))

	for _, a := range assignments {
		switch {
		case a.Column == t.Key:
			return "", nil, fmt.Errorf("%w: %q", ErrKeyAssignment, a.Column)
		case !slices.Contains(t.Updatable, a.Column):
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownColumn, a.Column)
		}
		if _, dup := seen[a.Column]; dup {
			return "", nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, a.Column)
		}
		seen[a.Column] = struct{}{}

		sets = append(sets, pq.QuoteIdentifier(a.Column)+"=?")
		args = append(args, a.Value)
	}
	args = append(args, keyValue)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s=? RETURNING %s",
		pq.QuoteIdentifier(t.Name),
		strings.Join(sets, ", "),
		pq.QuoteIdentifier(t.Key),
		t.quotedColumns(),
	)
	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}
