package payment

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/jobboard-api/internal/core/ports"
)

const (
	DefaultDelay     = time.Second
	txnSuffixLength  = 9
	txnSuffixCharset = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// MockProcessor stands in for a card gateway. Every charge succeeds after a
// fixed delay.
type MockProcessor struct {
	delay  time.Duration
	logger zerolog.Logger
}

func NewMockProcessor(delay time.Duration, logger zerolog.Logger) *MockProcessor {
	if delay < 0 {
		delay = 0
	}
	return &MockProcessor{delay: delay, logger: logger}
}

// Charge waits for the configured delay and returns a txn_ transaction id.
// It stops early with the context error when ctx is done.
func (p *MockProcessor) Charge(ctx context.Context, applicationID, method string, amount int64) (*ports.ChargeResult, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	txn, err := transactionID()
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Str("application_id", applicationID).Str("method", method).Int64("amount", amount).Str("transaction_id", txn).Msg("mock charge")
	return &ports.ChargeResult{Success: true, TransactionID: txn}, nil
}

func transactionID() (string, error) {
	b := make([]byte, txnSuffixLength)
	max := big.NewInt(int64(len(txnSuffixCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = txnSuffixCharset[n.Int64()]
	}
	return "txn_" + string(b), nil
}
