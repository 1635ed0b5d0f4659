package ports

import (
	"context"
	"io"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// ApplicationRepository defines persistence for applications.
type ApplicationRepository interface {
	// Create stores a new application. Returns domain.ErrAlreadyApplied when
	// the (job, applicant) pair already exists.
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error)
	// ListByJob and List populate applicant and job display fields.
	ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
}

// AnalyticsRepository runs read-only rollups over applications.
type AnalyticsRepository interface {
	ApplicantsPerJob(ctx context.Context) ([]domain.JobApplicantCount, error)
}

// CVStorage persists uploaded CV files.
type CVStorage interface {
	// Save writes the content under name and returns the public path.
	Save(ctx context.Context, name string, content io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}
