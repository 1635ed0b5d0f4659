package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/jobboard-api/internal/api/metrics"
	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Process charges the application fee for the caller's application.
//
// @Summary      Pay for an application
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentRequest  true  "Application and payment method"
// @Success      200   {object}  paymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /payments/process [post]
func (h *PaymentHandler) Process(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start := time.Now()
	invoice, err := h.payments.Process(c.Request().Context(), actor, req.ApplicationID, req.PaymentMethod)
	metrics.PaymentDuration.Observe(time.Since(start).Seconds())
	metrics.PaymentsTotal.WithLabelValues(paymentResult(err), metrics.PaymentMethodLabel(req.PaymentMethod)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paymentResponse{
		Message: "Payment processed successfully",
		Invoice: invoice,
	})
}

// Invoice returns an invoice to the applicant or the job poster.
//
// @Summary      Get an invoice
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  domain.Invoice
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /payments/invoice/{id} [get]
func (h *PaymentHandler) Invoice(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	invoice, err := h.payments.GetInvoice(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

func paymentResult(err error) string {
	switch {
	case err == nil:
		return "paid"
	case errors.Is(err, domain.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, domain.ErrPaymentFailed):
		return "failed"
	default:
		return "error"
	}
}
