package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
	"github.com/McLovin18/spidey-checkout/internal/domain/coupon"
	"github.com/McLovin18/spidey-checkout/internal/domain/pricing"
	"github.com/McLovin18/spidey-checkout/internal/domain/product"
	"github.com/McLovin18/spidey-checkout/internal/domain/quiz"
	"github.com/McLovin18/spidey-checkout/internal/notify"
	"github.com/McLovin18/spidey-checkout/internal/payment"
)

// PlaceOrderRequest is the checkout input.
type PlaceOrderRequest struct {
	UserID           string
	Email            string
	Guest            bool
	Items            []Item
	DeliveryLocation string
	CouponCode       string
	PaymentMethod    string
	Currency         string
	// IdempotencyKey is passed through to the payment provider so a
	// re-submitted checkout cannot capture twice.
	IdempotencyKey string
}

// PlaceOrderResult is the checkout output.
type PlaceOrderResult struct {
	Order    *Order
	Quote    pricing.Quote
	Products []campaign.PricedProduct
}

// Service is the checkout orchestrator.
type Service struct {
	products  product.Repository
	campaigns campaign.Repository
	coupons   coupon.Validator
	couponTx  coupon.Repository
	quiz      *quiz.Engine
	pay       payment.Provider
	orders    Repository
	stock     StockReserver
	customers CustomerRepository
	issuer    *coupon.Issuer
	notifier  notify.Notifier
	lg        *zap.Logger
	now       func() time.Time
}

// NewService wires the checkout orchestrator.
func NewService(
	products product.Repository,
	campaigns campaign.Repository,
	coupons coupon.Validator,
	couponRepo coupon.Repository,
	quizEngine *quiz.Engine,
	pay payment.Provider,
	orders Repository,
	stock StockReserver,
	customers CustomerRepository,
	issuer *coupon.Issuer,
	notifier notify.Notifier,
	lg *zap.Logger,
) *Service {
	return &Service{
		products:  products,
		campaigns: campaigns,
		coupons:   coupons,
		couponTx:  couponRepo,
		quiz:      quizEngine,
		pay:       pay,
		orders:    orders,
		stock:     stock,
		customers: customers,
		issuer:    issuer,
		notifier:  notifier,
		lg:        lg,
		now:       time.Now,
	}
}

// PlaceOrder runs the full checkout pipeline. Validation failures happen
// before any side effect; payment failures leave nothing persisted; a
// stock failure after payment triggers the compensating order deletion.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if req.DeliveryLocation == "" {
		return nil, ErrMissingDeliveryInfo
	}

	ids := make([]string, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: item.ProductID}
		}
		ids[i] = item.ProductID
	}

	priced, subtotal, err := s.priceItems(ctx, req.Items, ids)
	if err != nil {
		return nil, err
	}
	if !subtotal.IsPositive() {
		// A zero subtotal means an effectively empty cart; checkout is
		// disabled regardless of campaign state.
		return nil, ErrEmptyItems
	}

	// Tentative coupon validation. Authoritative consumption happens in
	// RedeemOnce after payment.
	var applied *coupon.Coupon
	if req.CouponCode != "" {
		applied, err = s.coupons.Validate(ctx, req.CouponCode, req.UserID)
		if err != nil {
			return nil, errors.Wrap(err, "validate coupon")
		}
	}

	quizResult, err := s.quiz.Result(ctx, req.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "quiz result")
	}

	in := pricing.Input{Subtotal: subtotal}
	if applied != nil {
		in.CouponPercent = applied.DiscountPercent
	}
	if quizResult != nil {
		in.QuizActive = true
		in.QuizOutcome = quizResult.Outcome
		in.QuizDiscountPercent = quizResult.Config.DiscountPercent
		in.QuizPenaltyFee = quizResult.Config.PenaltyFee
	}
	quote := pricing.Compose(in)

	orderID := uuid.New().String()

	conf, err := s.pay.Capture(ctx, payment.CaptureRequest{
		Amount:         quote.FinalTotal,
		Currency:       req.Currency,
		Method:         req.PaymentMethod,
		OrderID:        orderID,
		IdempotencyKey: req.IdempotencyKey,
		Email:          req.Email,
	})
	if err != nil {
		return nil, errors.Wrap(err, "capture payment")
	}

	if applied != nil {
		if err := s.couponTx.RedeemOnce(ctx, applied.Code, req.UserID, orderID); err != nil {
			// Paid but the coupon was spent concurrently. The capture is
			// authoritative at this point; surface the conflict.
			return nil, errors.Wrap(err, "redeem coupon")
		}
	}

	o := &Order{
		ID:               orderID,
		UserID:           req.UserID,
		Items:            req.Items,
		DeliveryLocation: req.DeliveryLocation,
		Subtotal:         quote.Subtotal,
		Adjustments:      quote.Adjustments(),
		Total:            quote.FinalTotal,
		TransactionID:    conf.TransactionID,
		Payer:            Payer{ID: conf.PayerID, Email: conf.PayerEmail},
		CreatedAt:        s.now(),
	}
	if applied != nil {
		o.CouponCode = applied.Code
	}
	if quizResult != nil {
		o.Trivia = &TriviaResult{
			Question: quizResult.Question,
			Outcome:  quizResult.Outcome,
			Discount: quote.QuizDiscount,
			Penalty:  quote.QuizPenalty,
		}
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if err := s.stock.Reserve(ctx, req.Items); err != nil {
		// Compensating action: the order must not survive a failed
		// reservation. A failed rollback is logged and the stock error
		// still surfaces.
		if delErr := s.orders.Delete(ctx, orderID); delErr != nil {
			s.lg.Error("Order rollback failed after stock shortage",
				zap.String("order_id", orderID),
				zap.Error(delErr),
			)
		}
		return nil, errors.Wrap(err, "reserve stock")
	}

	s.afterOrder(ctx, req, o, priced)

	return &PlaceOrderResult{
		Order:    o,
		Quote:    quote,
		Products: priced,
	}, nil
}

// priceItems batch-fetches the cart's products and resolves seasonal
// pricing for today. The returned subtotal is the sum of effective price
// times quantity; the composer never re-applies the seasonal discount.
func (s *Service) priceItems(ctx context.Context, items []Item, ids []string) ([]campaign.PricedProduct, decimal.Decimal, error) {
	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, errors.Wrap(err, "get products")
	}
	byID := make(map[string]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	seasonal, err := s.campaigns.GetSeasonal(ctx)
	if err != nil {
		return nil, decimal.Zero, errors.Wrap(err, "load seasonal config")
	}
	today := campaign.DateOf(s.now())

	priced := make([]campaign.PricedProduct, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, decimal.Zero, &ProductNotFoundError{ProductID: item.ProductID}
		}
		pp := campaign.ResolvePrice(seasonal, p, today)
		priced = append(priced, pp)
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(pp.EffectivePrice.Mul(qty))
	}
	return priced, subtotal.Round(2), nil
}

// afterOrder runs the best-effort post-checkout steps: order counting,
// automatic coupon issuance, and the guest confirmation email. None of
// them can fail the already-completed order.
func (s *Service) afterOrder(ctx context.Context, req PlaceOrderRequest, o *Order, priced []campaign.PricedProduct) {
	count, err := s.customers.IncrementOrderCount(ctx, req.UserID, req.Email)
	if err != nil {
		s.lg.Warn("Order count update failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
	} else if granted, err := s.issuer.MaybeIssueAuto(ctx, req.UserID, count); err != nil {
		s.lg.Warn("Automatic coupon issuance failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
	} else if granted != nil {
		s.lg.Info("Automatic coupon issued",
			zap.String("user_id", req.UserID),
			zap.String("code", granted.Code),
			zap.Int("order_count", count),
		)
	}

	if req.Guest && req.Email != "" {
		items := make([]notify.OrderEmailItem, len(o.Items))
		for i, it := range o.Items {
			name := it.ProductID
			if i < len(priced) {
				name = priced[i].Name
			}
			items[i] = notify.OrderEmailItem{Name: name, Quantity: it.Quantity}
		}
		s.notifier.OrderConfirmation(ctx, notify.OrderEmail{
			Email:            req.Email,
			OrderID:          o.ID,
			Items:            items,
			Total:            o.Total.StringFixed(2),
			DeliveryLocation: o.DeliveryLocation,
		})
	}
}
