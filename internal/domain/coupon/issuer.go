package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
)

// Manual issuance is restricted to customers with at least this many
// lifetime orders. A business rule of the issuance service, not a column
// constraint: the coupon record itself carries no minimum-order field.
const manualIssueMinOrders = 3

// ErrCustomerNotEligible is returned when a manual grant targets a customer
// below the lifetime order threshold.
var ErrCustomerNotEligible = errors.New("customer not eligible for manual coupon")

// ErrIssuanceDisabled is returned when automatic issuance is attempted
// while the auto-coupon campaign is off.
var ErrIssuanceDisabled = errors.New("automatic coupon issuance is disabled")

// CustomerReader exposes the lifetime order count used by issuance policy.
type CustomerReader interface {
	OrderCount(ctx context.Context, userID string) (int, error)
}

// Issuer grants coupons to customers, automatically after every Nth
// qualifying order or manually on admin request.
type Issuer struct {
	coupons   Repository
	campaigns campaign.Repository
	customers CustomerReader
	now       func() time.Time
}

// NewIssuer creates an Issuer with the given dependencies.
func NewIssuer(coupons Repository, campaigns campaign.Repository, customers CustomerReader) *Issuer {
	return &Issuer{
		coupons:   coupons,
		campaigns: campaigns,
		customers: customers,
		now:       time.Now,
	}
}

// AutoDue reports whether a coupon is due for a customer whose lifetime
// qualifying order count is orderCount: every orderMultiple-th order
// triggers one, and a zero count never does.
func AutoDue(orderCount, orderMultiple int) bool {
	if orderCount <= 0 || orderMultiple <= 0 {
		return false
	}
	return orderCount%orderMultiple == 0
}

// MaybeIssueAuto grants a coupon when the auto-coupon campaign is enabled
// and orderCount hits the configured multiple. It returns the new coupon,
// or nil when none is due.
func (i *Issuer) MaybeIssueAuto(ctx context.Context, userID string, orderCount int) (*Coupon, error) {
	cfg, err := i.campaigns.GetAutoCoupon(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load auto-coupon config")
	}
	if !cfg.Enabled() {
		return nil, nil
	}
	if !AutoDue(orderCount, cfg.OrderMultiple) {
		return nil, nil
	}

	c := &Coupon{
		Code:            GenerateCode(),
		UserID:          userID,
		DiscountPercent: cfg.DiscountPercent,
		Active:          true,
		Source:          SourceAuto,
		CreatedAt:       i.now(),
	}
	if err := i.coupons.Create(ctx, c); err != nil {
		return nil, errors.Wrap(err, "create auto coupon")
	}
	return c, nil
}

// IssueManual grants a coupon to a specific customer on admin request,
// bypassing the order-multiple check but requiring at least three lifetime
// orders.
func (i *Issuer) IssueManual(ctx context.Context, userID string, percent int) (*Coupon, error) {
	if percent < campaign.MinPercent || percent > campaign.MaxPercent {
		return nil, campaign.ErrPercentOutOfRange
	}

	count, err := i.customers.OrderCount(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load customer order count")
	}
	if count < manualIssueMinOrders {
		return nil, ErrCustomerNotEligible
	}

	c := &Coupon{
		Code:            GenerateCode(),
		UserID:          userID,
		DiscountPercent: percent,
		Active:          true,
		Source:          SourceManual,
		CreatedAt:       i.now(),
	}
	if err := i.coupons.Create(ctx, c); err != nil {
		return nil, errors.Wrap(err, "create manual coupon")
	}
	return c, nil
}

// GenerateCode produces a fresh upper-case coupon code of the form
// SPIDEY-XXXXXXXX.
func GenerateCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "SPIDEY-" + raw[:8]
}
