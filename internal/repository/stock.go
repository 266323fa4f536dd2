package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McLovin18/spidey-checkout/internal/domain/order"
)

// The CHECK (quantity >= 0) on the stock table plus this conditional
// UPDATE make the decrement atomic per product: a shortage affects zero
// rows instead of going negative.
const reserveStockSQL = `UPDATE stock SET quantity = quantity - $2
	WHERE product_id = $1 AND quantity >= $2`

var _ order.StockReserver = (*StockRepository)(nil)

// StockRepository implements order.StockReserver on PostgreSQL.
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository returns a StockRepository using the given pool.
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// Reserve decrements stock for every line inside one transaction. Any
// line that cannot be satisfied aborts the whole reservation with
// order.ErrOutOfStock.
func (r *StockRepository) Reserve(ctx context.Context, items []order.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("reserving stock: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, item := range items {
		tag, err := tx.Exec(ctx, reserveStockSQL, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("reserving stock for %q: %w", item.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("product %s: %w", item.ProductID, order.ErrOutOfStock)
		}
	}

	return tx.Commit(ctx)
}
