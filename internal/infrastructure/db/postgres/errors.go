package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/pkg/sqlbuild"
)

// SQLSTATE codes the repositories translate.
const (
	notNullViolation    = "23502"
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
	invalidText         = "22P02"
	numericOutOfRange   = "22003"
)

func sqlState(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// rejectReasons are the client-facing texts for constraint failures caused by
// input. The server message names constraints and tables, so it stays in the
// error chain for logging only.
var rejectReasons = map[pq.ErrorCode]string{
	notNullViolation:    "a required field is missing",
	foreignKeyViolation: "a referenced record does not exist",
	checkViolation:      "a value is outside the allowed range",
	invalidText:         "a value has the wrong format",
	numericOutOfRange:   "a number is out of range",
}

// translate maps constraint failures caused by client input to
// ErrInvalidRequest and zero-row results to notFound. Anything else is
// returned wrapped with op.
func translate(op string, err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if reason, ok := rejectReasons[sqlState(err)]; ok {
		return domain.Rejected(reason, fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// builderError marks a statement the builder refused as a client error.
func builderError(err error) error {
	reason := "unsupported field"
	switch {
	case errors.Is(err, sqlbuild.ErrNoAssignments):
		reason = "no fields to update"
	case errors.Is(err, sqlbuild.ErrKeyAssignment):
		reason = "key field cannot be updated"
	case errors.Is(err, sqlbuild.ErrDuplicateColumn):
		reason = "field given twice"
	case errors.Is(err, sqlbuild.ErrUnknownOperator):
		reason = "unsupported filter"
	}
	return domain.Rejected(reason, err)
}

func toAssignments(changes domain.Changes) []sqlbuild.Assignment {
	out := make([]sqlbuild.Assignment, len(changes))
	for i, c := range changes {
		out[i] = sqlbuild.Assignment{Column: c.Field, Value: c.Value}
	}
	return out
}
