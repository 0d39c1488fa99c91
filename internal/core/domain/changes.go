package domain

// Change is a single column assignment of a partial update.
type Change struct {
	Field string
	Value any
}

// Changes is an ordered set of column assignments. Order is significant: it
// decides placeholder numbering in the generated statement.
type Changes []Change

// Has reports whether field is assigned.
func (cs Changes) Has(field string) bool {
	for _, c := range cs {
		if c.Field == field {
			return true
		}
	}
	return false
}

// Get returns the value assigned to field.
func (cs Changes) Get(field string) (any, bool) {
	for _, c := range cs {
		if c.Field == field {
			return c.Value, true
		}
	}
	return nil, false
}

// Replace swaps the value of an already assigned field in place, keeping its
// position.
func (cs Changes) Replace(field string, value any) {
	for i := range cs {
		if cs[i].Field == field {
			cs[i].Value = value
			return
		}
	}
}

// Fields returns the assigned field names in order.
func (cs Changes) Fields() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Field
	}
	return out
}
