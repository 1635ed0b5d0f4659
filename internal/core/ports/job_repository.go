package ports

import (
	"context"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// JobFilter narrows job listings. Empty fields do not filter.
type JobFilter struct {
	Status   domain.JobStatus
	PostedBy string
}

// JobRepository defines persistence for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns jobs newest first.
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
}
