// Package campaign holds the promotional campaign configuration model:
// the seasonal discount, the quiz discount, and automatic coupon grants.
// Each campaign is a singleton configuration record toggled and edited by
// administrators.
package campaign

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Discount percentages across all campaigns and coupons share one range.
const (
	MinPercent = 1
	MaxPercent = 90
)

var (
	// ErrPercentOutOfRange is returned for discount percentages outside 1..90.
	ErrPercentOutOfRange = errors.New("discount percent must be between 1 and 90")
	// ErrInvalidWindow is returned when a window's start date is after its end date.
	ErrInvalidWindow = errors.New("campaign start date is after end date")
	// ErrInvalidOrderMultiple is returned for a non-positive auto-coupon order multiple.
	ErrInvalidOrderMultiple = errors.New("order multiple must be at least 1")
	// ErrNegativePenalty is returned for a negative quiz penalty fee.
	ErrNegativePenalty = errors.New("penalty fee must not be negative")
)

// ProductDiscount binds one product to its seasonal discount percentage.
type ProductDiscount struct {
	ProductID string
	Percent   int
}

// Seasonal is the seasonal discount campaign. Listed products carry their
// discount already baked into the catalog price; the campaign supplies the
// percentage used to reconstruct the pre-discount price for display.
type Seasonal struct {
	Active    bool
	Reason    string
	Label     string
	Window    Window
	Products  []ProductDiscount
	UpdatedAt time.Time
}

// ActiveOn reports whether the campaign applies on the given day. A nil
// receiver means the campaign was never configured and fails open to
// inactive.
func (s *Seasonal) ActiveOn(day Date) bool {
	return s != nil && s.Active && s.Window.Contains(day)
}

// DiscountFor returns the discount percentage for productID on day, and
// whether one applies.
func (s *Seasonal) DiscountFor(productID string, day Date) (int, bool) {
	if !s.ActiveOn(day) {
		return 0, false
	}
	for _, pd := range s.Products {
		if pd.ProductID == productID {
			return pd.Percent, true
		}
	}
	return 0, false
}

// Validate checks the configuration's internal consistency.
func (s *Seasonal) Validate() error {
	if err := validateWindow(s.Window); err != nil {
		return err
	}
	for _, pd := range s.Products {
		if pd.Percent < MinPercent || pd.Percent > MaxPercent {
			return errors.Wrapf(ErrPercentOutOfRange, "product %s", pd.ProductID)
		}
	}
	return nil
}

// Quiz is the trivia quiz campaign: one question, one attempt, a discount
// for a correct answer and a penalty fee for a wrong one. Revision is
// bumped on every save so sessions bound to older configurations reset.
type Quiz struct {
	Active          bool
	Reason          string
	Window          Window
	DiscountPercent int
	PenaltyFee      decimal.Decimal
	Revision        int64
	UpdatedAt       time.Time
}

// ActiveOn reports whether the quiz applies on the given day. Nil-safe.
func (q *Quiz) ActiveOn(day Date) bool {
	return q != nil && q.Active && q.Window.Contains(day)
}

// Validate checks the configuration's internal consistency.
func (q *Quiz) Validate() error {
	if q.DiscountPercent < MinPercent || q.DiscountPercent > MaxPercent {
		return ErrPercentOutOfRange
	}
	if q.PenaltyFee.IsNegative() {
		return ErrNegativePenalty
	}
	return validateWindow(q.Window)
}

// AutoCoupon configures automatic coupon grants after every Nth order.
type AutoCoupon struct {
	Active          bool
	OrderMultiple   int
	DiscountPercent int
	UpdatedAt       time.Time
}

// Enabled reports whether automatic issuance is on. Nil-safe.
func (a *AutoCoupon) Enabled() bool {
	return a != nil && a.Active
}

// Validate checks the configuration's internal consistency.
func (a *AutoCoupon) Validate() error {
	if a.OrderMultiple < 1 {
		return ErrInvalidOrderMultiple
	}
	if a.DiscountPercent < MinPercent || a.DiscountPercent > MaxPercent {
		return ErrPercentOutOfRange
	}
	return nil
}

// DisplayActive is the presentation view of a campaign toggle: a campaign
// whose window has already ended reads as inactive even while the stored
// flag is still on.
func DisplayActive(active bool, w Window, day Date) bool {
	return active && !w.Expired(day)
}

// Repository persists the singleton campaign configurations. Get methods
// return (nil, nil) when a configuration was never saved.
type Repository interface {
	GetSeasonal(ctx context.Context) (*Seasonal, error)
	SaveSeasonal(ctx context.Context, cfg *Seasonal) error
	GetQuiz(ctx context.Context) (*Quiz, error)
	SaveQuiz(ctx context.Context, cfg *Quiz) error
	GetAutoCoupon(ctx context.Context) (*AutoCoupon, error)
	SaveAutoCoupon(ctx context.Context, cfg *AutoCoupon) error
}

func validateWindow(w Window) error {
	if w.Start != nil && w.End != nil && w.Start.After(*w.End) {
		return ErrInvalidWindow
	}
	return nil
}
