package sqlbuild

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Op is a comparison operator usable in a WHERE clause.
type Op string

const (
	Eq    Op = "="
	Gte   Op = ">="
	Lte   Op = "<="
	Like  Op = "LIKE"
	ILike Op = "ILIKE"
)

func (o Op) valid() bool {
	switch o {
	case Eq, Gte, Lte, Like, ILike:
		return true
	}
	return false
}

// SelectBuilder accumulates AND'ed conditions over a Table. The first error
// encountered is kept and returned by Build.
type SelectBuilder struct {
	table   Table
	clauses []string
	args    []any
	orderBy []string
	err     error
}

// Select starts a query returning every column of t.
func (t Table) Select() *SelectBuilder {
	return &SelectBuilder{table: t}
}

// Where appends "column op value".
func (b *SelectBuilder) Where(column string, op Op, value any) *SelectBuilder {
	if !b.check(op, column) {
		return b
	}
	b.clauses = append(b.clauses, fmt.Sprintf("%s %s ?", pq.QuoteIdentifier(column), op))
	b.args = append(b.args, value)
	return b
}

// WhereAny appends a disjunction matching value against each column, one
// placeholder per column. The disjunction is always parenthesized so that it
// keeps its meaning when AND'ed with other clauses.
func (b *SelectBuilder) WhereAny(columns []string, op Op, value any) *SelectBuilder {
	if len(columns) == 0 || !b.check(op, columns...) {
		return b
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("%s %s ?", pq.QuoteIdentifier(c), op)
		b.args = append(b.args, value)
	}
	b.clauses = append(b.clauses, "("+strings.Join(parts, " OR ")+")")
	return b
}

// OrderBy sets ascending sort columns.
func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	for _, c := range columns {
		if !b.table.hasColumn(c) {
			b.fail(fmt.Errorf("%w: %q", ErrUnknownColumn, c))
			return b
		}
	}
	b.orderBy = columns
	return b
}

// Build renders the statement with $n placeholders numbered in clause-append
// order, and the matching argument list. WHERE is only emitted when at least
// one condition was added.
func (b *SelectBuilder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", b.table.quotedColumns(), pq.QuoteIdentifier(b.table.Name))
	if len(b.clauses) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.clauses, " AND "))
	}
	if len(b.orderBy) > 0 {
		quoted := make([]string, len(b.orderBy))
		for i, c := range b.orderBy {
			quoted[i] = pq.QuoteIdentifier(c)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(quoted, ", "))
	}

	return sqlx.Rebind(sqlx.DOLLAR, sb.String()), b.args, nil
}

func (b *SelectBuilder) check(op Op, columns ...string) bool {
	if b.err != nil {
		return false
	}
	if !op.valid() {
		b.fail(fmt.Errorf("%w: %q", ErrUnknownOperator, op))
		return false
	}
	for _, c := range columns {
		if !b.table.hasColumn(c) {
			b.fail(fmt.Errorf("%w: %q", ErrUnknownColumn, c))
			return false
		}
	}
	return true
}

func (b *SelectBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// ContainsPattern turns s into a LIKE pattern matching any value that
// contains s literally. LIKE wildcards inside s are escaped.
func ContainsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
