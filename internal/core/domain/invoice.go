package domain

import "time"

// ApplicationFee is the fixed amount charged per application.
const ApplicationFee = 100

// Invoice is the immutable receipt of a completed payment. One per application.
type Invoice struct {
	ID            string        `json:"id"`
	ApplicationID string        `json:"applicationId"`
	Amount        int64         `json:"amount"`
	PaymentMethod string        `json:"paymentMethod"`
	TransactionID string        `json:"transactionId"`
	Status        PaymentStatus `json:"status"`
	PaidAt        time.Time     `json:"paidAt"`
	CreatedAt     time.Time     `json:"createdAt"`

	// Populated when an invoice is read back.
	JobTitle       string `json:"jobTitle,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	ApplicantName  string `json:"applicantName,omitempty"`
	ApplicantEmail string `json:"applicantEmail,omitempty"`
}

// PaymentAttempt is an audit record of a single call to the payment processor.
type PaymentAttempt struct {
	ApplicationID string
	ApplicantID   string
	PaymentMethod string
	TransactionID string
	Success       bool
	Reason        string
	AttemptedAt   time.Time
}

// JobApplicantCount is one row of the applicants-per-job rollup.
type JobApplicantCount struct {
	JobID           string `json:"jobId"`
	Title           string `json:"title"`
	ApplicantsCount int64  `json:"applicantsCount"`
}
