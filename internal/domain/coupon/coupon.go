// Package coupon implements per-customer discount coupons: validation,
// one-time redemption, and automatic/manual issuance.
package coupon

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// Source tags how a coupon came to exist.
type Source string

const (
	// SourceManual marks coupons granted by an admin for a specific customer.
	SourceManual Source = "manual"
	// SourceAuto marks coupons granted by the every-Nth-order policy.
	SourceAuto Source = "auto"
	// SourceImport marks coupons loaded by the bulk import tool.
	SourceImport Source = "import"
)

// Rejection reasons, in validation check order.
var (
	// ErrNotFound is returned when no coupon exists for the presented code.
	ErrNotFound = errors.New("coupon not found")
	// ErrNotOwner is returned when the coupon belongs to a different customer.
	ErrNotOwner = errors.New("coupon belongs to another customer")
	// ErrInactive is returned when the coupon has been deactivated.
	ErrInactive = errors.New("coupon is not active")
	// ErrAlreadyUsed is returned when the coupon was already redeemed.
	ErrAlreadyUsed = errors.New("coupon already used")
)

// Coupon is a single-use percentage discount owned by one customer.
type Coupon struct {
	Code            string
	UserID          string
	DiscountPercent int
	Active          bool
	Used            bool
	Source          Source
	RedeemedOrderID string
	CreatedAt       time.Time
}

// NormalizeCode upper-cases and trims a presented coupon code. Codes are
// stored upper-case, so all lookups go through this.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Repository persists coupons. RedeemOnce performs the atomic active→used
// transition at the persistence layer: it must succeed at most once per
// code, except that repeating the call with the same orderID is a no-op
// (so a retried checkout cannot double-spend, and a crashed one can resume).
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	RedeemOnce(ctx context.Context, code, userID, orderID string) error
}
