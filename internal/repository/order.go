package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/McLovin18/spidey-checkout/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (
			id, user_id, items, delivery_location,
			subtotal, coupon_amount, quiz_discount, quiz_penalty, total,
			coupon_code, trivia, payment_transaction_id, payment_payer, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a paid order together with its frozen adjustment
// amounts and (when the quiz ran) the trivia audit record.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	var triviaJSON []byte
	if o.Trivia != nil {
		triviaJSON, err = json.Marshal(o.Trivia)
		if err != nil {
			return fmt.Errorf("marshaling trivia result: %w", err)
		}
	}

	payerJSON, err := json.Marshal(o.Payer)
	if err != nil {
		return fmt.Errorf("marshaling payer: %w", err)
	}

	a := o.Adjustments
	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, itemsJSON, o.DeliveryLocation,
		o.Subtotal, amountOrZero(a.Coupon), amountOrZero(a.QuizDiscount), amountOrZero(a.QuizPenalty), o.Total,
		o.CouponCode, triviaJSON, o.TransactionID, payerJSON, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// Delete removes an order; used only as the compensating action when
// stock reservation fails after payment.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("deleting order %q: %w", id, err)
	}
	return nil
}

// amountOrZero flattens an optional adjustment into a NUMERIC value.
func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
