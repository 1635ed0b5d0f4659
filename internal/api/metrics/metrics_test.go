package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodLabel(t *testing.T) {
	tests := map[string]string{
		"card":          "card",
		" Credit Card ": "card",
		"debit_card":    "card",
		"PayPal":        "paypal",
		"bank transfer": "bank_transfer",
		"":              "other",
		"bitcoin":       "other",
		"x-7f3a9":       "other",
	}
	for in, want := range tests {
		assert.Equal(t, want, PaymentMethodLabel(in), "method %q", in)
	}
}
