// Package metrics defines and registers the business Prometheus metrics of the
// job board API. HTTP request metrics come from the echoprometheus middleware.
//
// Metrics are registered with the default registry on package init via promauto.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Application metrics ──────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts application submissions.
// Label:
//   - result: "created", "duplicate", or "error"
var ApplicationsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of application submissions, by result.",
	},
	[]string{"result"},
)

// ApplicationStatusChangesTotal counts review decisions.
// Label:
//   - status: the status applied ("pending", "accepted", "rejected")
var ApplicationStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_status_changes_total",
		Help:      "Total number of application status updates, by new status.",
	},
	[]string{"status"},
)

// ── Payment metrics ──────────────────────────────────────────────────────────

// PaymentsTotal counts payment attempts.
// Labels:
//   - result: "paid", "already_paid", "failed", or "error"
//   - method: see PaymentMethodLabel
var PaymentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Total number of payment attempts, by result and method.",
	},
	[]string{"result", "method"},
)

// paymentMethodLabels is the closed set of method label values. The method is
// free text in the request, so anything else is reported as "other".
var paymentMethodLabels = map[string]string{
	"card":          "card",
	"credit_card":   "card",
	"debit_card":    "card",
	"paypal":        "paypal",
	"bank_transfer": "bank_transfer",
}

// PaymentMethodLabel maps a client supplied payment method to a bounded label value.
func PaymentMethodLabel(method string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(method)), " ", "_")
	if l, ok := paymentMethodLabels[key]; ok {
		return l
	}
	return "other"
}

// PaymentDuration measures the payment workflow end-to-end, processor delay included.
var PaymentDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_duration_seconds",
		Help:      "Duration of payment processing including the processor call.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Identity metrics ─────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - action: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts.",
	},
	[]string{"action", "result"},
)
