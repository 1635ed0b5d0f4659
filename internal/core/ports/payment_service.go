package ports

import (
	"context"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// PaymentService runs the payment and invoice workflow.
type PaymentService interface {
	Process(ctx context.Context, actor domain.Actor, applicationID, method string) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)
}

// AnalyticsService exposes read-only rollups.
type AnalyticsService interface {
	ApplicantsPerJob(ctx context.Context) ([]domain.JobApplicantCount, error)
}

// UserUpdateInput carries admin edits. Empty fields keep the stored value.
type UserUpdateInput struct {
	Name    string
	Email   string
	Role    domain.Role
	Company string
}

// AdminService backs the admin console.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UserUpdateInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListJobs(ctx context.Context) ([]*domain.Job, error)
	ListApplications(ctx context.Context) ([]*domain.Application, error)
}
