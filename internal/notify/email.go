// Package notify sends the guest-checkout order confirmation to the email
// dispatch service. Delivery is fire-and-forget: failures are logged and
// never block order completion.
package notify

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// OrderEmail is the payload of a guest order confirmation.
type OrderEmail struct {
	Email            string
	OrderID          string
	Items            []OrderEmailItem
	Total            string
	DeliveryLocation string
}

// OrderEmailItem is one cart line in the confirmation.
type OrderEmailItem struct {
	Name     string
	Quantity int
}

// Notifier posts order confirmations to an HTTP dispatch endpoint.
type Notifier interface {
	OrderConfirmation(ctx context.Context, e OrderEmail)
}

// EmailNotifier implements Notifier over plain HTTP.
type EmailNotifier struct {
	url    string
	client *http.Client
	lg     *zap.Logger
}

// NewEmailNotifier creates a notifier posting to url. An empty url
// disables dispatch entirely.
func NewEmailNotifier(url string, lg *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		lg:     lg,
	}
}

// OrderConfirmation posts the confirmation payload. Errors are logged at
// WARN and swallowed.
func (n *EmailNotifier) OrderConfirmation(ctx context.Context, e OrderEmail) {
	if n.url == "" {
		return
	}
	if err := n.post(ctx, e); err != nil {
		n.lg.Warn("Guest order email dispatch failed",
			zap.String("order_id", e.OrderID),
			zap.Error(err),
		)
	}
}

func (n *EmailNotifier) post(ctx context.Context, e OrderEmail) error {
	body := encodeOrderEmail(e)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return errors.Errorf("notifier responded %d", resp.StatusCode)
	}
	return nil
}

// encodeOrderEmail writes the payload with jx to keep the wire format
// stable and allocation-light.
func encodeOrderEmail(e OrderEmail) []byte {
	var enc jx.Encoder
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("email", func(enc *jx.Encoder) { enc.Str(e.Email) })
		enc.Field("orderId", func(enc *jx.Encoder) { enc.Str(e.OrderID) })
		enc.Field("items", func(enc *jx.Encoder) {
			enc.Arr(func(enc *jx.Encoder) {
				for _, it := range e.Items {
					enc.Obj(func(enc *jx.Encoder) {
						enc.Field("name", func(enc *jx.Encoder) { enc.Str(it.Name) })
						enc.Field("quantity", func(enc *jx.Encoder) { enc.Int(it.Quantity) })
					})
				}
			})
		})
		enc.Field("total", func(enc *jx.Encoder) { enc.Str(e.Total) })
		enc.Field("deliveryLocation", func(enc *jx.Encoder) { enc.Str(e.DeliveryLocation) })
	})
	return enc.Bytes()
}
