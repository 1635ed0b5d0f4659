package domain

import (
	"strings"
	"time"
)

// Role is the persisted role of a user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployee  Role = "employee"
	RoleJobSeeker Role = "job_seeker"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleJobSeeker:
		return true
	}
	return false
}

// RequiresCompany reports whether users with this role must belong to a company.
func (r Role) RequiresCompany() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Company      string    `json:"company,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Normalize applies the role/company rules: the company is dropped for job
// seekers and the email is lower-cased.
func (u *User) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	u.Company = strings.TrimSpace(u.Company)
	if !u.Role.RequiresCompany() {
		u.Company = ""
	}
}

// Validate checks the invariants that hold for every stored user.
func (u *User) Validate() error {
	if u.Name == "" {
		return NewValidationError("name is required")
	}
	if u.Email == "" {
		return NewValidationError("email is required")
	}
	if !u.Role.Valid() {
		return NewValidationError("role must be one of: admin employee job_seeker")
	}
	if u.Role.RequiresCompany() && u.Company == "" {
		return NewValidationError("company is required for admin or employee role")
	}
	return nil
}
