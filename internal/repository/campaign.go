package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
)

const (
	getSeasonalSQL = `SELECT active, reason, label, start_date, end_date, updated_at
		FROM seasonal_discount_config WHERE onerow`

	upsertSeasonalSQL = `INSERT INTO seasonal_discount_config (onerow, active, reason, label, start_date, end_date, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, now())
		ON CONFLICT (onerow) DO UPDATE SET
			active = EXCLUDED.active, reason = EXCLUDED.reason, label = EXCLUDED.label,
			start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date, updated_at = now()`

	listSeasonalProductsSQL = `SELECT product_id, percent
		FROM seasonal_discount_products ORDER BY position`

	clearSeasonalProductsSQL = `DELETE FROM seasonal_discount_products`

	insertSeasonalProductSQL = `INSERT INTO seasonal_discount_products (product_id, percent, position)
		VALUES ($1, $2, $3)`

	getQuizSQL = `SELECT active, reason, start_date, end_date, discount_percent, penalty_fee, revision, updated_at
		FROM quiz_discount_config WHERE onerow`

	// Every save bumps the revision so in-flight quiz sessions keyed on the
	// previous configuration are abandoned.
	upsertQuizSQL = `INSERT INTO quiz_discount_config (onerow, active, reason, start_date, end_date, discount_percent, penalty_fee, revision, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, 1, now())
		ON CONFLICT (onerow) DO UPDATE SET
			active = EXCLUDED.active, reason = EXCLUDED.reason,
			start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date,
			discount_percent = EXCLUDED.discount_percent, penalty_fee = EXCLUDED.penalty_fee,
			revision = quiz_discount_config.revision + 1, updated_at = now()`

	getAutoCouponSQL = `SELECT active, order_multiple, discount_percent, updated_at
		FROM auto_coupon_config WHERE onerow`

	upsertAutoCouponSQL = `INSERT INTO auto_coupon_config (onerow, active, order_multiple, discount_percent, updated_at)
		VALUES (TRUE, $1, $2, $3, now())
		ON CONFLICT (onerow) DO UPDATE SET
			active = EXCLUDED.active, order_multiple = EXCLUDED.order_multiple,
			discount_percent = EXCLUDED.discount_percent, updated_at = now()`
)

var _ campaign.Repository = (*CampaignRepository)(nil)

// CampaignRepository persists the singleton campaign configuration records.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a CampaignRepository that uses the given pool.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// GetSeasonal loads the seasonal campaign singleton, or (nil, nil) when it
// was never saved.
func (r *CampaignRepository) GetSeasonal(ctx context.Context) (*campaign.Seasonal, error) {
	var (
		cfg        campaign.Seasonal
		start, end *time.Time
	)
	err := r.pool.QueryRow(ctx, getSeasonalSQL).Scan(
		&cfg.Active, &cfg.Reason, &cfg.Label, &start, &end, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting seasonal config: %w", err)
	}
	cfg.Window = windowFromTimes(start, end)

	rows, err := r.pool.Query(ctx, listSeasonalProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing seasonal products: %w", err)
	}
	cfg.Products, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (campaign.ProductDiscount, error) {
		var pd campaign.ProductDiscount
		err := row.Scan(&pd.ProductID, &pd.Percent)
		return pd, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing seasonal products: %w", err)
	}
	return &cfg, nil
}

// SaveSeasonal validates and upserts the seasonal campaign singleton,
// replacing the product list as a whole inside one transaction.
func (r *CampaignRepository) SaveSeasonal(ctx context.Context, cfg *campaign.Seasonal) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("saving seasonal config: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	start, end := windowToTimes(cfg.Window)
	if _, err := tx.Exec(ctx, upsertSeasonalSQL, cfg.Active, cfg.Reason, cfg.Label, start, end); err != nil {
		return fmt.Errorf("saving seasonal config: %w", err)
	}
	if _, err := tx.Exec(ctx, clearSeasonalProductsSQL); err != nil {
		return fmt.Errorf("clearing seasonal products: %w", err)
	}
	for i, pd := range cfg.Products {
		if _, err := tx.Exec(ctx, insertSeasonalProductSQL, pd.ProductID, pd.Percent, i); err != nil {
			return fmt.Errorf("saving seasonal product %q: %w", pd.ProductID, err)
		}
	}

	return tx.Commit(ctx)
}

// GetQuiz loads the quiz campaign singleton, or (nil, nil).
func (r *CampaignRepository) GetQuiz(ctx context.Context) (*campaign.Quiz, error) {
	var (
		cfg        campaign.Quiz
		start, end *time.Time
		penalty    decimal.Decimal
	)
	err := r.pool.QueryRow(ctx, getQuizSQL).Scan(
		&cfg.Active, &cfg.Reason, &start, &end,
		&cfg.DiscountPercent, &penalty, &cfg.Revision, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting quiz config: %w", err)
	}
	cfg.Window = windowFromTimes(start, end)
	cfg.PenaltyFee = penalty
	return &cfg, nil
}

// SaveQuiz validates and upserts the quiz campaign singleton, bumping its
// revision.
func (r *CampaignRepository) SaveQuiz(ctx context.Context, cfg *campaign.Quiz) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	start, end := windowToTimes(cfg.Window)
	_, err := r.pool.Exec(ctx, upsertQuizSQL,
		cfg.Active, cfg.Reason, start, end, cfg.DiscountPercent, cfg.PenaltyFee,
	)
	if err != nil {
		return fmt.Errorf("saving quiz config: %w", err)
	}
	return nil
}

// GetAutoCoupon loads the auto-coupon singleton, or (nil, nil).
func (r *CampaignRepository) GetAutoCoupon(ctx context.Context) (*campaign.AutoCoupon, error) {
	var cfg campaign.AutoCoupon
	err := r.pool.QueryRow(ctx, getAutoCouponSQL).Scan(
		&cfg.Active, &cfg.OrderMultiple, &cfg.DiscountPercent, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting auto-coupon config: %w", err)
	}
	return &cfg, nil
}

// SaveAutoCoupon validates and upserts the auto-coupon singleton.
func (r *CampaignRepository) SaveAutoCoupon(ctx context.Context, cfg *campaign.AutoCoupon) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, upsertAutoCouponSQL,
		cfg.Active, cfg.OrderMultiple, cfg.DiscountPercent,
	)
	if err != nil {
		return fmt.Errorf("saving auto-coupon config: %w", err)
	}
	return nil
}

// windowFromTimes converts nullable DATE columns into a campaign.Window.
func windowFromTimes(start, end *time.Time) campaign.Window {
	var w campaign.Window
	if start != nil {
		d := campaign.DateOf(*start)
		w.Start = &d
	}
	if end != nil {
		d := campaign.DateOf(*end)
		w.End = &d
	}
	return w
}

// windowToTimes converts a campaign.Window into nullable DATE values.
func windowToTimes(w campaign.Window) (start, end *time.Time) {
	if w.Start != nil {
		t, _ := time.Parse("2006-01-02", w.Start.String())
		start = &t
	}
	if w.End != nil {
		t, _ := time.Parse("2006-01-02", w.End.String())
		end = &t
	}
	return start, end
}
