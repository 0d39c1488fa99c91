package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/api/metrics"
	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

// maxHandleAttempts bounds the suffix search for a free company handle.
const maxHandleAttempts = 20

type CompanyService struct {
	auditor
	companies ports.CompanyRepository
	jobs      ports.JobRepository
	logger    zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, jobs ports.JobRepository, sink ports.AuditSink, logger zerolog.Logger) *CompanyService {
	return &CompanyService{auditor: auditor{sink: sink}, companies: companies, jobs: jobs, logger: logger}
}

// Create derives the handle from the name. When the handle is taken the
// numeric suffixes -2, -3, ... are tried in turn; each attempt is a single
// conditional insert, so concurrent creations never overwrite each other.
func (s *CompanyService) Create(ctx context.Context, actor domain.Identity, in ports.CreateCompanyInput) (*domain.Company, error) {
	base := slug.Make(in.Name)
	if base == "" {
		return nil, domain.InvalidRequest("name %q does not produce a usable handle", in.Name)
	}

	for attempt := 1; attempt <= maxHandleAttempts; attempt++ {
		company := &domain.Company{
			Handle:       handleCandidate(base, attempt),
			Name:         in.Name,
			Description:  in.Description,
			NumEmployees: in.NumEmployees,
			LogoURL:      in.LogoURL,
		}

		created, err := s.companies.Insert(ctx, company)
		if errors.Is(err, domain.ErrCompanyExists) {
			metrics.HandleCollisionsTotal.Inc()
			s.logger.Debug().Str("handle", company.Handle).Msg("handle taken, trying next suffix")
			continue
		}
		if err != nil {
			s.logger.Error().Err(err).Str("handle", company.Handle).Msg("failed to create company")
			return nil, err
		}

		s.logger.Info().Str("handle", created.Handle).Str("actor", actor.Username).Msg("company created")
		s.audit(actor, domain.AuditCreate, "company", created.Handle, nil)
		return created, nil
	}

	return nil, fmt.Errorf("%w: no free handle for %q after %d attempts", domain.ErrCompanyExists, base, maxHandleAttempts)
}

func handleCandidate(base string, attempt int) string {
	if attempt == 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

// Get returns the company together with its jobs.
func (s *CompanyService) Get(ctx context.Context, handle string) (*domain.CompanyDetail, error) {
	company, err := s.companies.FindByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByCompany(ctx, handle)
	if err != nil {
		return nil, err
	}
	return &domain.CompanyDetail{Company: *company, Jobs: jobs}, nil
}

func (s *CompanyService) List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.companies.List(ctx, filter)
}

// Update rejects any attempt to touch the handle before the repository is
// involved.
func (s *CompanyService) Update(ctx context.Context, actor domain.Identity, handle string, changes domain.Changes) (*domain.Company, error) {
	if err := checkChanges(changes, domain.CompanyKey); err != nil {
		return nil, err
	}

	company, err := s.companies.Update(ctx, handle, changes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("handle", handle).Strs("fields", changes.Fields()).Msg("company updated")
	s.audit(actor, domain.AuditUpdate, "company", handle, changes.Fields())
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, actor domain.Identity, handle string) error {
	if err := s.companies.Delete(ctx, handle); err != nil {
		return err
	}
	s.logger.Info().Str("handle", handle).Msg("company deleted")
	s.audit(actor, domain.AuditDelete, "company", handle, nil)
	return nil
}

// checkChanges enforces the partial-update preconditions shared by every
// entity: at least one field, and never the primary key.
func checkChanges(changes domain.Changes, key string) error {
	if changes.Has(key) {
		return domain.InvalidRequest("%s cannot be updated", key)
	}
	if len(changes) == 0 {
		return domain.InvalidRequest("no fields to update")
	}
	return nil
}
