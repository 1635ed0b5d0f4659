package handler

import (
	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// ── Auth ─────────────────────────────────────────────────────────────────────

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin employee job_seeker"`
	Company  string `json:"company"  validate:"max=200"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResponse is returned by register and login.
type authResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	Company string      `json:"company,omitempty"`
	Token   string      `json:"token"`
}

func newAuthResponse(token string, u *domain.User) authResponse {
	return authResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Company: u.Company,
		Token:   token,
	}
}

// ── Jobs ─────────────────────────────────────────────────────────────────────

type jobRequest struct {
	Title        string   `json:"title"        validate:"required,max=200"`
	Description  string   `json:"description"  validate:"required"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location"     validate:"required"`
	Salary       string   `json:"salary"`
	Status       string   `json:"status"       validate:"omitempty,oneof=active inactive"`
}

// jobUpdateRequest allows partial updates; empty fields keep stored values.
type jobUpdateRequest struct {
	Title        string   `json:"title"        validate:"max=200"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location"`
	Salary       string   `json:"salary"`
	Status       string   `json:"status"       validate:"omitempty,oneof=active inactive"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type applicationResponse struct {
	Message     string              `json:"message"`
	Application *domain.Application `json:"application"`
}

// ── Payments ─────────────────────────────────────────────────────────────────

type paymentRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,max=50"`
}

type paymentResponse struct {
	Message string          `json:"message"`
	Invoice *domain.Invoice `json:"invoice"`
}

// ── Admin ────────────────────────────────────────────────────────────────────

type userUpdateRequest struct {
	Name    string `json:"name"    validate:"max=100"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Role    string `json:"role"    validate:"omitempty,oneof=admin employee job_seeker"`
	Company string `json:"company" validate:"max=200"`
}

type messageResponse struct {
	Message string `json:"message"`
}
