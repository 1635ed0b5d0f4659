package ports

import (
	"context"
	"io"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// JobInput carries the editable fields of a posting. On update, zero values
// keep the stored value.
type JobInput struct {
	Title        string
	Description  string
	Requirements []string
	Location     string
	Salary       string
	Status       domain.JobStatus
}

// JobService manages the job catalog.
type JobService interface {
	ListActive(ctx context.Context) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	Create(ctx context.Context, actor domain.Actor, in JobInput) (*domain.Job, error)
	Update(ctx context.Context, actor domain.Actor, id string, in JobInput) (*domain.Job, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// CVUpload is a CV file received with an application.
type CVUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// ApplicationService drives the application lifecycle.
type ApplicationService interface {
	Submit(ctx context.Context, actor domain.Actor, jobID string, cv CVUpload) (*domain.Application, error)
	ListForJob(ctx context.Context, actor domain.Actor, jobID string) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, applicationID string, status domain.ApplicationStatus) (*domain.Application, error)
}
