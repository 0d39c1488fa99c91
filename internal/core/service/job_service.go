package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

type JobService struct {
	auditor
	jobs   ports.JobRepository
	logger zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, sink ports.AuditSink, logger zerolog.Logger) *JobService {
	return &JobService{auditor: auditor{sink: sink}, jobs: jobs, logger: logger}
}

// Create stores the job; the id and posting date are assigned by the store.
func (s *JobService) Create(ctx context.Context, actor domain.Identity, in ports.CreateJobInput) (*domain.Job, error) {
	job, err := s.jobs.Insert(ctx, &domain.Job{
		Title:         in.Title,
		Salary:        in.Salary,
		Equity:        in.Equity,
		CompanyHandle: in.CompanyHandle,
	})
	if err != nil {
		return nil, err
	}

	key := strconv.FormatInt(job.ID, 10)
	s.logger.Info().Int64("id", job.ID).Str("company", job.CompanyHandle).Msg("job created")
	s.audit(actor, domain.AuditCreate, "job", key, nil)
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id int64) (*domain.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

func (s *JobService) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	return s.jobs.List(ctx, filter)
}

func (s *JobService) Update(ctx context.Context, actor domain.Identity, id int64, changes domain.Changes) (*domain.Job, error) {
	if err := checkChanges(changes, domain.JobKey); err != nil {
		return nil, err
	}

	job, err := s.jobs.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", id).Strs("fields", changes.Fields()).Msg("job updated")
	s.audit(actor, domain.AuditUpdate, "job", strconv.FormatInt(id, 10), changes.Fields())
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("job deleted")
	s.audit(actor, domain.AuditDelete, "job", strconv.FormatInt(id, 10), nil)
	return nil
}
