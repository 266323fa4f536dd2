// Package pricing composes a cart subtotal with the independently
// configured discount sources (coupon, trivia quiz) into a final
// chargeable total and an itemized adjustment breakdown.
//
// The composition order is fixed: the coupon applies to the subtotal, the
// quiz discount or penalty applies to the post-coupon base. Every
// intermediate amount is rounded to currency precision as it is computed,
// matching what the storefront displays step by step; rounding only once
// at the end diverges by fractions of a cent and is treated as a bug.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/McLovin18/spidey-checkout/internal/domain/quiz"
)

var hundred = decimal.NewFromInt(100)

// Input is everything the composer needs. All fields are snapshots taken
// by the caller; the composer reads no global state.
type Input struct {
	// Subtotal is the sum of unit price * quantity over the cart. Unit
	// prices already reflect catalog/seasonal pricing, so no seasonal
	// discount is re-applied here.
	Subtotal decimal.Decimal

	// CouponPercent is the applied coupon's discount percent; zero means
	// no coupon.
	CouponPercent int

	// QuizActive reports whether the quiz campaign is in effect and the
	// customer has a graded outcome. When false the quiz fields are ignored.
	QuizActive          bool
	QuizOutcome         quiz.Outcome
	QuizDiscountPercent int
	QuizPenaltyFee      decimal.Decimal
}

// Quote is the composed price. The intermediate amounts are exactly those
// used to produce FinalTotal; at the moment of successful payment they are
// frozen into the order's adjustment record rather than recomputed later.
type Quote struct {
	Subtotal        decimal.Decimal
	CouponAmount    decimal.Decimal
	BaseAfterCoupon decimal.Decimal
	QuizDiscount    decimal.Decimal
	QuizPenalty     decimal.Decimal
	FinalTotal      decimal.Decimal
}

// Adjustments are the nonzero named amounts persisted with an order.
// Invariant: finalTotal == subtotal - coupon - quizDiscount + quizPenalty,
// clamped at zero, with per-step rounding.
type Adjustments struct {
	Coupon       *decimal.Decimal `json:"coupon,omitempty"`
	QuizDiscount *decimal.Decimal `json:"quizDiscount,omitempty"`
	QuizPenalty  *decimal.Decimal `json:"quizPenalty,omitempty"`
}

// Adjustments returns only the nonzero amounts of the quote.
func (q Quote) Adjustments() Adjustments {
	var a Adjustments
	if q.CouponAmount.IsPositive() {
		v := q.CouponAmount
		a.Coupon = &v
	}
	if q.QuizDiscount.IsPositive() {
		v := q.QuizDiscount
		a.QuizDiscount = &v
	}
	if q.QuizPenalty.IsPositive() {
		v := q.QuizPenalty
		a.QuizPenalty = &v
	}
	return a
}

// Compose computes the final total in strict order:
//
//  1. couponAmount = round2(subtotal * couponPercent/100)
//  2. baseAfterCoupon = max(0, round2(subtotal - couponAmount))
//  3. correct outcome:   quizDiscount = round2(base * quizPercent/100)
//     incorrect outcome: quizPenalty  = round2(penaltyFee)
//  4. finalTotal = max(0, round2(base - quizDiscount + quizPenalty))
func Compose(in Input) Quote {
	subtotal := in.Subtotal.Round(2)

	couponAmount := decimal.Zero
	if in.CouponPercent > 0 {
		pct := decimal.NewFromInt(int64(in.CouponPercent))
		couponAmount = subtotal.Mul(pct).Div(hundred).Round(2)
	}

	base := floorAtZero(subtotal.Sub(couponAmount).Round(2))

	quizDiscount := decimal.Zero
	quizPenalty := decimal.Zero
	if in.QuizActive {
		switch in.QuizOutcome {
		case quiz.OutcomeCorrect:
			pct := decimal.NewFromInt(int64(in.QuizDiscountPercent))
			quizDiscount = base.Mul(pct).Div(hundred).Round(2)
		case quiz.OutcomeIncorrect:
			quizPenalty = in.QuizPenaltyFee.Round(2)
		}
	}

	total := floorAtZero(base.Sub(quizDiscount).Add(quizPenalty).Round(2))

	return Quote{
		Subtotal:        subtotal,
		CouponAmount:    couponAmount,
		BaseAfterCoupon: base,
		QuizDiscount:    quizDiscount,
		QuizPenalty:     quizPenalty,
		FinalTotal:      total,
	}
}

func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
