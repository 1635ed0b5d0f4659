package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

var allowedCVExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ApplicationService drives submissions and reviews of applications.
type ApplicationService struct {
	apps    ports.ApplicationRepository
	jobs    ports.JobRepository
	storage ports.CVStorage
	logger  zerolog.Logger
}

func NewApplicationService(apps ports.ApplicationRepository, jobs ports.JobRepository, storage ports.CVStorage, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, storage: storage, logger: logger}
}

// Submit creates a pending, unpaid application of actor to jobID. A second
// application for the same job is rejected both here and by the unique index.
func (s *ApplicationService) Submit(ctx context.Context, actor domain.Actor, jobID string, cv ports.CVUpload) (*domain.Application, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	existing, err := s.apps.FindByJobAndApplicant(ctx, jobID, actor.ID)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrAlreadyApplied
	case err != nil && !errors.Is(err, domain.ErrApplicationNotFound):
		return nil, err
	}

	if cv.Content == nil {
		return nil, domain.NewValidationError("cv file is required")
	}
	ext := strings.ToLower(filepath.Ext(cv.Filename))
	if !allowedCVExtensions[ext] {
		return nil, domain.NewValidationError("cv must be a .pdf, .doc or .docx file")
	}

	cvPath, err := s.storage.Save(ctx, "cv-"+uuid.NewString()+ext, cv.Content, cv.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store cv: %w", err)
	}

	now := time.Now().UTC()
	app := &domain.Application{
		JobID:         jobID,
		ApplicantID:   actor.ID,
		CVPath:        cvPath,
		Status:        domain.ApplicationPending,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.apps.Create(ctx, app)
	if err != nil {
		if delErr := s.storage.Delete(ctx, cvPath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("cv_path", cvPath).Msg("failed to remove orphaned cv")
		}
		return nil, err
	}

	s.logger.Info().Str("application_id", created.ID).Str("job_id", jobID).Str("applicant_id", actor.ID).Msg("application submitted")
	return created, nil
}

// ListForJob returns the applications to a job, visible to its poster and admins.
func (s *ApplicationService) ListForJob(ctx context.Context, actor domain.Actor, jobID string) ([]*domain.Application, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := actor.Allow(domain.OwnerOrAdmin(job.PostedBy)); err != nil {
		return nil, err
	}
	return s.apps.ListByJob(ctx, jobID)
}

// UpdateStatus sets the review status. Any known status may overwrite any
// other; the payment status is left untouched.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor domain.Actor, applicationID string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status must be one of: pending accepted rejected")
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			// Only admins may act on applications whose job is gone.
			job = &domain.Job{}
		} else {
			return nil, err
		}
	}
	if err := actor.Allow(domain.OwnerOrAdmin(job.PostedBy)); err != nil {
		return nil, err
	}

	updated, err := s.apps.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("application_id", applicationID).Str("from", string(app.Status)).Str("to", string(status)).Str("actor_id", actor.ID).Msg("application status changed")
	return updated, nil
}
