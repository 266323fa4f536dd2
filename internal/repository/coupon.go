package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McLovin18/spidey-checkout/internal/domain/coupon"
)

const (
	getCouponByCodeSQL = `SELECT code, user_id, discount_percent, active, used, source, COALESCE(redeemed_order_id, ''), created_at
		FROM coupons WHERE code = $1`

	createCouponSQL = `INSERT INTO coupons (code, user_id, discount_percent, active, used, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	// The WHERE clause makes redemption a single conditional check-and-set:
	// it succeeds for an unspent coupon, and again for the same order
	// (retry after a crash), but never for a second distinct order.
	redeemCouponSQL = `UPDATE coupons SET used = TRUE, redeemed_order_id = $3
		WHERE code = $1 AND user_id = $2 AND active = TRUE
		  AND (used = FALSE OR redeemed_order_id = $3)`
)

var _ coupon.Repository = (*CouponRepository)(nil)

// CouponRepository implements coupon.Repository backed by PostgreSQL.
type CouponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository returns a CouponRepository that uses the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// FindByCode looks up a coupon by its normalized code.
// Returns coupon.ErrNotFound when no such coupon exists.
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	rows, err := r.pool.Query(ctx, getCouponByCodeSQL, coupon.NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("finding coupon %q: %w", code, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCoupon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, coupon.ErrNotFound
		}
		return nil, fmt.Errorf("finding coupon %q: %w", code, err)
	}
	return &c, nil
}

// Create persists a new coupon.
func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	_, err := r.pool.Exec(ctx, createCouponSQL,
		coupon.NormalizeCode(c.Code), c.UserID, c.DiscountPercent,
		c.Active, c.Used, string(c.Source), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating coupon %q: %w", c.Code, err)
	}
	return nil
}

// RedeemOnce marks the coupon used, atomically. The conditional UPDATE
// guarantees two concurrent checkouts cannot both spend the same code;
// a repeat call for the same order is a no-op.
func (r *CouponRepository) RedeemOnce(ctx context.Context, code, userID, orderID string) error {
	tag, err := r.pool.Exec(ctx, redeemCouponSQL, coupon.NormalizeCode(code), userID, orderID)
	if err != nil {
		return fmt.Errorf("redeeming coupon %q: %w", code, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// No row transitioned: map the reason using the current record state.
	c, err := r.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	switch {
	case c.UserID != userID:
		return coupon.ErrNotOwner
	case !c.Active:
		return coupon.ErrInactive
	default:
		return coupon.ErrAlreadyUsed
	}
}

func scanCoupon(row pgx.CollectableRow) (coupon.Coupon, error) {
	var (
		c      coupon.Coupon
		source string
	)
	err := row.Scan(
		&c.Code, &c.UserID, &c.DiscountPercent, &c.Active, &c.Used,
		&source, &c.RedeemedOrderID, &c.CreatedAt,
	)
	c.Source = coupon.Source(source)
	return c, err
}
