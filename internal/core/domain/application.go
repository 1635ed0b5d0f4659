package domain

import "time"

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// PaymentStatus is the state of the application fee. It is only ever changed
// by the payment workflow.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Application tracks a job seeker's candidacy for a job and its payment gate.
// At most one application exists per (JobID, ApplicantID).
type Application struct {
	ID            string            `json:"id"`
	JobID         string            `json:"jobId"`
	ApplicantID   string            `json:"applicantId"`
	CVPath        string            `json:"cvPath"`
	Status        ApplicationStatus `json:"status"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`

	// Populated by list queries only.
	JobTitle       string `json:"jobTitle,omitempty"`
	ApplicantName  string `json:"applicantName,omitempty"`
	ApplicantEmail string `json:"applicantEmail,omitempty"`
}

// IsPaid reports whether the application fee has been settled.
func (a *Application) IsPaid() bool {
	return a.PaymentStatus == PaymentPaid
}
