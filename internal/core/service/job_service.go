package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

// JobService manages postings. Role gating happens in the HTTP layer; this
// service enforces ownership.
type JobService struct {
	jobs   ports.JobRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, logger zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, users: users, logger: logger}
}

func (s *JobService) ListActive(ctx context.Context) ([]*domain.Job, error) {
	return s.jobs.List(ctx, ports.JobFilter{Status: domain.JobActive})
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

// Create stores a posting owned by the actor. The company name is copied from
// the poster at creation time.
func (s *JobService) Create(ctx context.Context, actor domain.Actor, in ports.JobInput) (*domain.Job, error) {
	if err := validateJobInput(in, true); err != nil {
		return nil, err
	}

	poster, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.JobActive
	}

	now := time.Now().UTC()
	job := &domain.Job{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Requirements: in.Requirements,
		Location:     strings.TrimSpace(in.Location),
		Salary:       strings.TrimSpace(in.Salary),
		Status:       status,
		PostedBy:     poster.ID,
		CompanyName:  poster.Company,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Str("posted_by", actor.ID).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().Str("job_id", created.ID).Str("posted_by", created.PostedBy).Msg("job created")
	return created, nil
}

// Update merges non-empty fields of in into the stored posting.
func (s *JobService) Update(ctx context.Context, actor domain.Actor, id string, in ports.JobInput) (*domain.Job, error) {
	if err := validateJobInput(in, false); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := actor.Allow(domain.OwnerOrAdmin(job.PostedBy)); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.Title); v != "" {
		job.Title = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		job.Description = v
	}
	if len(in.Requirements) > 0 {
		job.Requirements = in.Requirements
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		job.Location = v
	}
	if v := strings.TrimSpace(in.Salary); v != "" {
		job.Salary = v
	}
	if in.Status != "" {
		job.Status = in.Status
	}
	job.UpdatedAt = time.Now().UTC()

	return s.jobs.Update(ctx, job)
}

func (s *JobService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := actor.Allow(domain.OwnerOrAdmin(job.PostedBy)); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("job_id", id).Str("actor_id", actor.ID).Msg("job deleted")
	return nil
}

func validateJobInput(in ports.JobInput, create bool) error {
	if in.Status != "" && !in.Status.Valid() {
		return domain.NewValidationError("status must be one of: active inactive")
	}
	if !create {
		return nil
	}
	if strings.TrimSpace(in.Title) == "" {
		return domain.NewValidationError("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.NewValidationError("description is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return domain.NewValidationError("location is required")
	}
	return nil
}
