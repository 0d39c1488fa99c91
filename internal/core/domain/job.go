package domain

import "time"

// Job is a listing posted by a company.
type Job struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Salary        float64   `json:"salary" db:"salary"`
	Equity        float64   `json:"equity" db:"equity"`
	CompanyHandle string    `json:"company_handle" db:"company_handle"`
	DatePosted    time.Time `json:"date_posted" db:"date_posted"`
}

// JobKey is the immutable primary key column of a job.
const JobKey = "id"

// JobFilter carries the optional job listing parameters.
type JobFilter struct {
	Search    *string
	MinSalary *float64
	MinEquity *float64
}
