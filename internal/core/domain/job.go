package domain

import "time"

// JobStatus toggles the visibility of a posting in the public catalog.
type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobInactive JobStatus = "inactive"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	return s == JobActive || s == JobInactive
}

// Job is a posting owned by the user who created it.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Location     string    `json:"location"`
	Salary       string    `json:"salary"`
	Status       JobStatus `json:"status"`
	PostedBy     string    `json:"postedBy"`
	CompanyName  string    `json:"companyName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
