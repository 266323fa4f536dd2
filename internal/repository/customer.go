package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McLovin18/spidey-checkout/internal/domain/order"
)

const (
	incrementOrderCountSQL = `INSERT INTO customers (user_id, email, order_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id) DO UPDATE SET
			order_count = customers.order_count + 1,
			email = CASE WHEN EXCLUDED.email <> '' THEN EXCLUDED.email ELSE customers.email END
		RETURNING order_count`

	getOrderCountSQL = `SELECT order_count FROM customers WHERE user_id = $1`
)

var _ order.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository tracks lifetime qualifying order counts per customer.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository using the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// IncrementOrderCount records one qualifying order and returns the new
// lifetime count. The upsert makes the increment atomic per customer.
func (r *CustomerRepository) IncrementOrderCount(ctx context.Context, userID, email string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, incrementOrderCountSQL, userID, email).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("incrementing order count for %q: %w", userID, err)
	}
	return count, nil
}

// OrderCount returns a customer's lifetime qualifying order count; zero
// when the customer has never ordered.
func (r *CustomerRepository) OrderCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, getOrderCountSQL, userID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("getting order count for %q: %w", userID, err)
	}
	return count, nil
}
