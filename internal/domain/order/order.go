// Package order implements checkout: it prices the cart, captures payment,
// redeems the coupon, persists the order with its frozen adjustment
// breakdown, and reserves stock with a compensating rollback.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/McLovin18/spidey-checkout/internal/domain/pricing"
	"github.com/McLovin18/spidey-checkout/internal/domain/quiz"
)

// Validation errors surfaced before any side effects.
var (
	ErrEmptyItems          = errors.New("items required")
	ErrMissingDeliveryInfo = errors.New("delivery location required")
)

// ErrOutOfStock is surfaced after the compensating order deletion when a
// stock reservation cannot be satisfied.
var ErrOutOfStock = errors.New("insufficient stock")

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.ProductID)
}

// Item is one cart line as submitted at checkout. Size and Version are
// optional variant labels carried through to the persisted order.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Version   string `json:"version,omitempty"`
}

// TriviaResult is the audit record of the quiz attempt bound to an order:
// the question shown, the binary outcome, and the amount it produced.
// Distinct from the numeric adjustments so the trail survives later
// campaign edits.
type TriviaResult struct {
	Question string          `json:"question"`
	Outcome  quiz.Outcome    `json:"outcome"`
	Discount decimal.Decimal `json:"discount"`
	Penalty  decimal.Decimal `json:"penalty"`
}

// Payer captures who paid, as reported by the payment provider.
type Payer struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// Order is a completed, paid order.
type Order struct {
	ID               string
	UserID           string
	Items            []Item
	DeliveryLocation string
	Subtotal         decimal.Decimal
	Adjustments      pricing.Adjustments
	Total            decimal.Decimal
	CouponCode       string
	Trivia           *TriviaResult
	TransactionID    string
	Payer            Payer
	CreatedAt        time.Time
}

// Repository persists orders. Delete exists solely for the compensating
// rollback when stock reservation fails after payment.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
}

// StockReserver decrements stock for the order's lines. Implementations
// must be atomic per product and fail the whole reservation when any line
// cannot be satisfied.
type StockReserver interface {
	Reserve(ctx context.Context, items []Item) error
}

// CustomerRepository tracks per-customer lifetime order counts used by the
// auto-coupon policy.
type CustomerRepository interface {
	// IncrementOrderCount records one more qualifying order and returns
	// the new lifetime count.
	IncrementOrderCount(ctx context.Context, userID, email string) (int, error)
	OrderCount(ctx context.Context, userID string) (int, error)
}
