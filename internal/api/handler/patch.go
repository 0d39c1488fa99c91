package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
	kindBool
)

// fieldSpec describes one patchable field: its JSON type, whether null is
// accepted, and the validator tag applied to non-null values.
type fieldSpec struct {
	kind     fieldKind
	nullable bool
	rule     string
}

// patchSchema lists the patchable fields of an entity. The key is known so
// that it can be rejected explicitly instead of as an unknown field.
type patchSchema struct {
	key    string
	fields map[string]fieldSpec
}

var companyPatch = patchSchema{
	key: domain.CompanyKey,
	fields: map[string]fieldSpec{
		"name":          {kind: kindString, rule: "min=1"},
		"description":   {kind: kindString, nullable: true},
		"num_employees": {kind: kindInt, nullable: true, rule: "gte=0"},
		"logo_url":      {kind: kindString, nullable: true, rule: "url"},
	},
}

var jobPatch = patchSchema{
	key: domain.JobKey,
	fields: map[string]fieldSpec{
		"title":  {kind: kindString, rule: "min=1"},
		"salary": {kind: kindFloat, rule: "gte=0"},
		"equity": {kind: kindFloat, rule: "gte=0,lte=1"},
	},
}

var userPatch = patchSchema{
	key: domain.UserKey,
	fields: map[string]fieldSpec{
		"password":   {kind: kindString, rule: "min=5,maxbytes=72"},
		"first_name": {kind: kindString, rule: "min=1"},
		"last_name":  {kind: kindString, rule: "min=1"},
		"email":      {kind: kindString, rule: "email"},
		"photo_url":  {kind: kindString, nullable: true, rule: "url"},
		"is_admin":   {kind: kindBool},
	},
}

var jsonNull = []byte("null")

// decodeChanges reads a JSON object into an ordered change set, keeping the
// order in which keys appear in the body.
func decodeChanges(body io.Reader, schema patchSchema) (domain.Changes, error) {
	dec := json.NewDecoder(body)

	tok, err := dec.Token()
	if err != nil {
		return nil, domain.InvalidRequest("malformed JSON body")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, domain.InvalidRequest("body must be a JSON object")
	}

	var changes domain.Changes
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, domain.InvalidRequest("malformed JSON body")
		}
		field := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, domain.InvalidRequest("malformed value for %q", field)
		}

		if field == schema.key {
			return nil, domain.InvalidRequest("%s cannot be updated", field)
		}
		fs, ok := schema.fields[field]
		if !ok {
			return nil, domain.InvalidRequest("unknown field %q", field)
		}
		if changes.Has(field) {
			return nil, domain.InvalidRequest("field %q given twice", field)
		}

		value, err := fs.decode(field, raw)
		if err != nil {
			return nil, err
		}
		changes = append(changes, domain.Change{Field: field, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, domain.InvalidRequest("malformed JSON body")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, domain.InvalidRequest("unexpected data after JSON object")
	}
	return changes, nil
}

func (s fieldSpec) decode(field string, raw json.RawMessage) (any, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		if !s.nullable {
			return nil, domain.InvalidRequest("%s cannot be null", field)
		}
		return nil, nil
	}

	var (
		value any
		err   error
	)
	switch s.kind {
	case kindString:
		var v string
		err = json.Unmarshal(raw, &v)
		value = v
	case kindInt:
		var v int
		err = json.Unmarshal(raw, &v)
		value = v
	case kindFloat:
		var v float64
		err = json.Unmarshal(raw, &v)
		value = v
	case kindBool:
		var v bool
		err = json.Unmarshal(raw, &v)
		value = v
	}
	if err != nil {
		return nil, domain.InvalidRequest("%s has the wrong type", field)
	}

	if s.rule != "" {
		if err := validate.Var(value, s.rule); err != nil {
			return nil, domain.InvalidRequest("%s", ruleMessage(err, field))
		}
	}
	return value, nil
}
