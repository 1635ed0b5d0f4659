package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

// PaymentService charges the application fee and issues invoices.
type PaymentService struct {
	users     ports.UserRepository
	apps      ports.ApplicationRepository
	jobs      ports.JobRepository
	payments  ports.PaymentRepository
	processor ports.PaymentProcessor
	logger    zerolog.Logger
}

func NewPaymentService(users ports.UserRepository, apps ports.ApplicationRepository, jobs ports.JobRepository, payments ports.PaymentRepository, processor ports.PaymentProcessor, logger zerolog.Logger) *PaymentService {
	return &PaymentService{users: users, apps: apps, jobs: jobs, payments: payments, processor: processor, logger: logger}
}

// Process pays for an application on behalf of its applicant. On success the
// application is marked paid and exactly one invoice is written; a failed
// charge leaves the application untouched.
func (s *PaymentService) Process(ctx context.Context, actor domain.Actor, applicationID, method string) (*domain.Invoice, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, domain.NewValidationError("payment method is required")
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := actor.Allow(domain.Owns(app.ApplicantID)); err != nil {
		return nil, err
	}
	if app.IsPaid() {
		return nil, domain.ErrAlreadyPaid
	}

	result, err := s.processor.Charge(ctx, app.ID, method, domain.ApplicationFee)
	if err != nil {
		s.recordAttempt(ctx, app, method, nil, err.Error())
		return nil, fmt.Errorf("charge application %s: %w", app.ID, err)
	}
	if !result.Success {
		s.recordAttempt(ctx, app, method, result, result.Reason)
		s.logger.Warn().Str("application_id", app.ID).Str("reason", result.Reason).Msg("payment declined")
		if result.Reason != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrPaymentFailed, result.Reason)
		}
		return nil, domain.ErrPaymentFailed
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ApplicationID: app.ID,
		Amount:        domain.ApplicationFee,
		PaymentMethod: method,
		TransactionID: result.TransactionID,
		Status:        domain.PaymentPaid,
		PaidAt:        now,
		CreatedAt:     now,
	}

	created, err := s.payments.CompletePayment(ctx, invoice)
	if err != nil {
		reason := "persist payment: " + err.Error()
		if errors.Is(err, domain.ErrAlreadyPaid) {
			reason = "lost concurrent payment"
		}
		s.recordAttempt(ctx, app, method, result, reason)
		return nil, err
	}

	s.recordAttempt(ctx, app, method, result, "")
	s.logger.Info().Str("application_id", app.ID).Str("invoice_id", created.ID).Str("transaction_id", created.TransactionID).Msg("payment processed")
	return created, nil
}

// GetInvoice returns an invoice to the application's applicant or the job's
// poster, with the job and applicant details filled in.
func (s *PaymentService) GetInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.payments.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.FindByID(ctx, invoice.ApplicationID)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}

	view := *invoice
	posterID := ""
	job, err := s.jobs.FindByID(ctx, app.JobID)
	switch {
	case err == nil:
		posterID = job.PostedBy
		view.JobTitle = job.Title
		view.CompanyName = job.CompanyName
	case !errors.Is(err, domain.ErrJobNotFound):
		return nil, err
	}

	if err := actor.Allow(domain.AnyOf(domain.Owns(app.ApplicantID), domain.Owns(posterID))); err != nil {
		return nil, err
	}

	applicant, err := s.users.FindByID(ctx, app.ApplicantID)
	switch {
	case err == nil:
		view.ApplicantName = applicant.Name
		view.ApplicantEmail = applicant.Email
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}
	return &view, nil
}

// recordAttempt audits a processor call. Failures to write are logged only.
func (s *PaymentService) recordAttempt(ctx context.Context, app *domain.Application, method string, result *ports.ChargeResult, reason string) {
	attempt := &domain.PaymentAttempt{
		ApplicationID: app.ID,
		ApplicantID:   app.ApplicantID,
		PaymentMethod: method,
		Success:       result != nil && result.Success && reason == "",
		Reason:        reason,
		AttemptedAt:   time.Now().UTC(),
	}
	if result != nil {
		attempt.TransactionID = result.TransactionID
	}
	if err := s.payments.InsertAttempt(ctx, attempt); err != nil {
		s.logger.Warn().Err(err).Str("application_id", app.ID).Msg("failed to record payment attempt")
	}
}
