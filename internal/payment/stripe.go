package payment

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

var minorUnits = decimal.NewFromInt(100)

// StripeProvider implements Provider on top of Stripe PaymentIntents.
type StripeProvider struct{}

// NewStripeProvider configures the global Stripe client key and returns
// the provider.
func NewStripeProvider(apiKey string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{}
}

// Capture creates and immediately confirms a PaymentIntent for the
// requested amount. Amounts are converted to the currency's minor units.
func (p *StripeProvider) Capture(ctx context.Context, req CaptureRequest) (*Confirmation, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount.Mul(minorUnits).IntPart()),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod: stripe.String(req.Method),
		Confirm:       stripe.Bool(true),
		// Redirect-based methods need a browser round trip the checkout
		// flow does not support.
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
		Metadata: map[string]string{
			"order_id": req.OrderID,
		},
	}
	params.Context = ctx
	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, classifyStripeError(err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, &ProviderError{
			Code:    string(intent.Status),
			Message: "payment not completed",
		}
	}

	conf := &Confirmation{
		TransactionID: intent.ID,
		PayerEmail:    req.Email,
		Amount:        req.Amount,
		Currency:      req.Currency,
	}
	if intent.Customer != nil {
		conf.PayerID = intent.Customer.ID
	}
	if intent.ReceiptEmail != "" {
		conf.PayerEmail = intent.ReceiptEmail
	}
	return conf, nil
}

// classifyStripeError maps Stripe errors onto the package taxonomy.
func classifyStripeError(err error) error {
	var serr *stripe.Error
	if !errors.As(err, &serr) {
		return errors.Wrap(err, "stripe")
	}

	switch {
	// Stripe reports bad or revoked API keys as plain 401s rather than a
	// dedicated error type.
	case serr.HTTPStatusCode == http.StatusUnauthorized:
		return errors.Wrap(ErrInvalidClientConfig, serr.Msg)
	case strings.Contains(serr.Msg, "test mode") || strings.Contains(serr.Msg, "live mode"):
		return errors.Wrap(ErrSandboxMisconfigured, serr.Msg)
	default:
		return &ProviderError{
			Code:    string(serr.Code),
			Message: serr.Msg,
		}
	}
}
