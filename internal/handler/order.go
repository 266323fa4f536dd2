package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/McLovin18/spidey-checkout/internal/domain/coupon"
	"github.com/McLovin18/spidey-checkout/internal/domain/order"
	"github.com/McLovin18/spidey-checkout/internal/payment"
)

type checkoutRequest struct {
	UserID           string       `json:"userId"`
	Email            string       `json:"email"`
	Guest            bool         `json:"guest"`
	Items            []order.Item `json:"items"`
	DeliveryLocation string       `json:"deliveryLocation"`
	CouponCode       string       `json:"couponCode"`
	PaymentMethod    string       `json:"paymentMethod"`
	Currency         string       `json:"currency"`
}

// Checkout runs the full checkout pipeline and returns the priced order.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId required")
		return
	}

	res, err := h.checkout.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		UserID:           req.UserID,
		Email:            req.Email,
		Guest:            req.Guest,
		Items:            req.Items,
		DeliveryLocation: req.DeliveryLocation,
		CouponCode:       req.CouponCode,
		PaymentMethod:    req.PaymentMethod,
		Currency:         req.Currency,
		IdempotencyKey:   r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeOrder(e, res)
	})
}

// writeCheckoutError maps checkout pipeline errors onto HTTP statuses:
// validation 400, unknown product and coupon rejection 422, already-used
// coupon and stock shortage 409, payment failures 402.
func (h *Handler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound   *order.ProductNotFoundError
		badQty     *order.InvalidQuantityError
		payFailure *payment.ProviderError
	)

	switch {
	case errors.Is(err, order.ErrEmptyItems),
		errors.Is(err, order.ErrMissingDeliveryInfo):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &badQty):
		writeError(w, http.StatusBadRequest, badQty.Error())
	case errors.As(err, &notFound):
		writeError(w, http.StatusUnprocessableEntity, notFound.Error())
	case errors.Is(err, coupon.ErrAlreadyUsed):
		writeError(w, http.StatusConflict, "coupon already used")
	case errors.Is(err, coupon.ErrNotFound),
		errors.Is(err, coupon.ErrNotOwner),
		errors.Is(err, coupon.ErrInactive):
		msg, _ := couponRejection(err)
		writeError(w, http.StatusUnprocessableEntity, msg)
	case errors.Is(err, order.ErrOutOfStock):
		writeError(w, http.StatusConflict, "insufficient stock")
	case errors.Is(err, payment.ErrInvalidClientConfig),
		errors.Is(err, payment.ErrSandboxMisconfigured):
		writeError(w, http.StatusPaymentRequired, "payment configuration error")
	case errors.As(err, &payFailure):
		writeError(w, http.StatusPaymentRequired, payFailure.Message)
	default:
		internalError(w, r, err)
	}
}

func encodeOrder(e *jx.Encoder, res *order.PlaceOrderResult) {
	o := res.Order
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range o.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("productId", func(e *jx.Encoder) { e.Str(it.ProductID) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(it.Quantity) })
					})
				}
			})
		})
		e.Field("products", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range res.Products {
					encodePricedProduct(e, p)
				}
			})
		})
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(o.Subtotal.StringFixed(2)) })
		e.Field("adjustments", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				encodeAmountField(e, "coupon", o.Adjustments.Coupon)
				encodeAmountField(e, "quizDiscount", o.Adjustments.QuizDiscount)
				encodeAmountField(e, "quizPenalty", o.Adjustments.QuizPenalty)
			})
		})
		e.Field("total", func(e *jx.Encoder) { e.Str(o.Total.StringFixed(2)) })
		if o.CouponCode != "" {
			e.Field("couponCode", func(e *jx.Encoder) { e.Str(o.CouponCode) })
		}
		if o.Trivia != nil {
			e.Field("trivia", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("question", func(e *jx.Encoder) { e.Str(o.Trivia.Question) })
					e.Field("outcome", func(e *jx.Encoder) { e.Str(string(o.Trivia.Outcome)) })
					e.Field("discount", func(e *jx.Encoder) { e.Str(o.Trivia.Discount.StringFixed(2)) })
					e.Field("penalty", func(e *jx.Encoder) { e.Str(o.Trivia.Penalty.StringFixed(2)) })
				})
			})
		}
		e.Field("transactionId", func(e *jx.Encoder) { e.Str(o.TransactionID) })
	})
}

func encodeAmountField(e *jx.Encoder, name string, amount *decimal.Decimal) {
	if amount == nil {
		return
	}
	v := *amount
	e.Field(name, func(e *jx.Encoder) { e.Str(v.StringFixed(2)) })
}
