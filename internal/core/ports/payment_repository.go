package ports

import (
	"context"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// PaymentRepository persists the outcome of payments.
type PaymentRepository interface {
	// CompletePayment atomically marks the invoice's application as paid and
	// inserts the invoice. Returns domain.ErrAlreadyPaid when the application
	// was paid in the meantime; in that case nothing is written.
	CompletePayment(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	FindInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error)

	// InsertAttempt appends a processor call to the payment_attempts audit collection.
	InsertAttempt(ctx context.Context, attempt *domain.PaymentAttempt) error
}

// ChargeResult is what the payment processor reports for one charge.
type ChargeResult struct {
	Success       bool
	TransactionID string
	Reason        string
}

// PaymentProcessor charges the application fee.
type PaymentProcessor interface {
	Charge(ctx context.Context, applicationID, method string, amount int64) (*ChargeResult, error)
}
