package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

// AdminService backs the admin console. Callers are gated to admins upstream.
type AdminService struct {
	users  ports.UserRepository
	jobs   ports.JobRepository
	apps   ports.ApplicationRepository
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, jobs ports.JobRepository, apps ports.ApplicationRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, jobs: jobs, apps: apps, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateUser merges the non-empty fields of in and re-applies the role and
// company rules.
func (s *AdminService) UpdateUser(ctx context.Context, id string, in ports.UserUpdateInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Company != "" {
		user.Company = in.Company
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("role", string(updated.Role)).Msg("user updated by admin")
	return updated, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted by admin")
	return nil
}

func (s *AdminService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	return s.jobs.List(ctx, ports.JobFilter{})
}

func (s *AdminService) ListApplications(ctx context.Context) ([]*domain.Application, error) {
	return s.apps.List(ctx)
}

// AnalyticsService computes rollups on demand.
type AnalyticsService struct {
	repo ports.AnalyticsRepository
}

func NewAnalyticsService(repo ports.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// ApplicantsPerJob counts applications per job. Jobs without applications
// are not listed.
func (s *AnalyticsService) ApplicantsPerJob(ctx context.Context) ([]domain.JobApplicantCount, error) {
	rows, err := s.repo.ApplicantsPerJob(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.JobApplicantCount{}
	}
	return rows, nil
}
