package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirpyerre/jobly/internal/core/domain"
	"github.com/sirpyerre/jobly/internal/core/ports"
)

func TestJobService_CreateAndGet(t *testing.T) {
	repo := newStubJobRepo()
	sink := &recordingSink{}
	svc := NewJobService(repo, sink, discardLogger)

	job, err := svc.Create(context.Background(), admin, ports.CreateJobInput{Title: "Engineer", Salary: 100000, Equity: 0.1, CompanyHandle: "acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.ID == 0 {
		t.Fatalf("expected an assigned id")
	}

	got, err := svc.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Engineer" || got.CompanyHandle != "acme" {
		t.Fatalf("unexpected job: %+v", got)
	}
	if e := sink.last(); e.Entity != "job" || e.Key != "1" || e.Action != domain.AuditCreate {
		t.Fatalf("unexpected audit entry: %+v", e)
	}
}

func TestJobService_Update_RejectsID(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, nil, discardLogger)

	_, err := svc.Update(context.Background(), admin, 1, domain.Changes{{Field: "id", Value: 7}})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("repository must not be reached")
	}
}

func TestJobService_Update(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, nil, discardLogger)
	created, _ := repo.Insert(context.Background(), &domain.Job{Title: "Engineer", CompanyHandle: "acme"})

	job, err := svc.Update(context.Background(), admin, created.ID, domain.Changes{{Field: "title", Value: "Senior Engineer"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if job.Title != "Senior Engineer" {
		t.Fatalf("unexpected title %q", job.Title)
	}
}

func TestJobService_MissingJob(t *testing.T) {
	svc := NewJobService(newStubJobRepo(), nil, discardLogger)

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), admin, 42, domain.Changes{{Field: "title", Value: "x"}}); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), admin, 42); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobService_List_ForwardsSearch(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, nil, discardLogger)
	_, _ = repo.Insert(context.Background(), &domain.Job{Title: "Engineer"})
	_, _ = repo.Insert(context.Background(), &domain.Job{Title: "Accountant"})

	jobs, err := svc.List(context.Background(), domain.JobFilter{Search: strPtr("engi")})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Engineer" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}
