package domain

// Company is identified by a handle slugified from its name at creation.
type Company struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	Description  *string `json:"description" db:"description"`
	NumEmployees *int    `json:"num_employees" db:"num_employees"`
	LogoURL      *string `json:"logo_url" db:"logo_url"`
}

// CompanyKey is the immutable primary key column of a company.
const CompanyKey = "handle"

// CompanyFilter carries the optional company listing parameters. Nil means
// "not supplied".
type CompanyFilter struct {
	Search       *string
	MinEmployees *int
	MaxEmployees *int
}

// Validate rejects inverted employee bounds.
func (f CompanyFilter) Validate() error {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return InvalidRequest("min_employees cannot be greater than max_employees")
	}
	return nil
}

// CompanyDetail is a company together with its open jobs.
type CompanyDetail struct {
	Company
	Jobs []Job `json:"jobs"`
}
