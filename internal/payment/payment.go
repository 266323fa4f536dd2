// Package payment defines the payment provider port used at checkout and
// its Stripe implementation. The provider is an external collaborator: the
// checkout flow hands it an amount and a payment method and receives a
// confirmation, with failures classified into configuration problems,
// sandbox-mode problems, and generic payment failures.
package payment

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidClientConfig indicates the provider credentials or client
	// setup are wrong (bad API key, unknown account).
	ErrInvalidClientConfig = errors.New("payment provider client misconfigured")
	// ErrSandboxMisconfigured indicates live and test material are mixed up
	// (a test key used with a live payment method or vice versa).
	ErrSandboxMisconfigured = errors.New("payment sandbox mode misconfigured")
)

// ProviderError is a generic payment failure carrying the provider's own
// code and message (card declined, insufficient funds, ...).
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment failed: %s (%s)", e.Message, e.Code)
}

// CaptureRequest describes one charge to capture.
type CaptureRequest struct {
	Amount   decimal.Decimal
	Currency string
	// Method is the provider-side payment method token collected by the
	// storefront (never raw card data).
	Method string
	// OrderID is attached as provider metadata for reconciliation.
	OrderID string
	// IdempotencyKey deduplicates retried submissions of the same checkout.
	IdempotencyKey string
	Email          string
}

// Confirmation is what a successful capture yields.
type Confirmation struct {
	TransactionID string
	PayerID       string
	PayerEmail    string
	Amount        decimal.Decimal
	Currency      string
}

// Provider captures payments.
type Provider interface {
	Capture(ctx context.Context, req CaptureRequest) (*Confirmation, error)
}
