package handler

import "github.com/sirpyerre/jobly/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username  string  `json:"username"   validate:"required,min=1,max=25,excludesall=/?#"`
	Password  string  `json:"password"   validate:"required,min=5,maxbytes=72"`
	FirstName string  `json:"first_name" validate:"required,min=1"`
	LastName  string  `json:"last_name"  validate:"required,min=1"`
	Email     string  `json:"email"      validate:"required,email"`
	PhotoURL  *string `json:"photo_url"  validate:"omitempty,url"`
	IsAdmin   bool    `json:"is_admin"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Users ---

type userResponse struct {
	User *domain.User `json:"user"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

// --- Companies ---

type createCompanyRequest struct {
	Name         string  `json:"name"          validate:"required,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"num_employees" validate:"omitempty,gte=0"`
	LogoURL      *string `json:"logo_url"      validate:"omitempty,url"`
}

type companyResponse struct {
	Company *domain.Company `json:"company"`
}

type companyDetailResponse struct {
	Company *domain.CompanyDetail `json:"company"`
}

type companiesResponse struct {
	Companies []domain.Company `json:"companies"`
}

// --- Jobs ---

type createJobRequest struct {
	Title         string   `json:"title"          validate:"required,min=1"`
	Salary        *float64 `json:"salary"         validate:"required,gte=0"`
	Equity        *float64 `json:"equity"         validate:"required,gte=0,lte=1"`
	CompanyHandle string   `json:"company_handle" validate:"required"`
}

type jobResponse struct {
	Job *domain.Job `json:"job"`
}

type jobsResponse struct {
	Jobs []domain.Job `json:"jobs"`
}
