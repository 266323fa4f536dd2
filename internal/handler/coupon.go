package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
	"github.com/McLovin18/spidey-checkout/internal/domain/coupon"
)

type validateCouponRequest struct {
	Code   string `json:"code"`
	UserID string `json:"userId"`
}

// ValidateCoupon performs the tentative pre-checkout coupon check. It
// marks nothing used.
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "code and userId required")
		return
	}

	c, err := h.coupons.Validate(r.Context(), req.Code, req.UserID)
	if err != nil {
		if msg, ok := couponRejection(err); ok {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Str(c.Code) })
			e.Field("discountPercent", func(e *jx.Encoder) { e.Int(c.DiscountPercent) })
			e.Field("valid", func(e *jx.Encoder) { e.Bool(true) })
		})
	})
}

type issueCouponRequest struct {
	UserID  string `json:"userId"`
	Percent int    `json:"percent"`
}

// IssueCoupon grants a coupon to a specific customer on admin request.
func (h *Handler) IssueCoupon(w http.ResponseWriter, r *http.Request) {
	var req issueCouponRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId required")
		return
	}

	c, err := h.issuer.IssueManual(r.Context(), req.UserID, req.Percent)
	switch {
	case errors.Is(err, campaign.ErrPercentOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, coupon.ErrCustomerNotEligible):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Str(c.Code) })
			e.Field("userId", func(e *jx.Encoder) { e.Str(c.UserID) })
			e.Field("discountPercent", func(e *jx.Encoder) { e.Int(c.DiscountPercent) })
			e.Field("source", func(e *jx.Encoder) { e.Str(string(c.Source)) })
		})
	})
}

// couponRejection translates the validator's rejection reasons into client
// messages. Unknown errors are not rejections.
func couponRejection(err error) (string, bool) {
	switch {
	case errors.Is(err, coupon.ErrNotFound):
		return "coupon not found", true
	case errors.Is(err, coupon.ErrNotOwner):
		return "coupon belongs to another customer", true
	case errors.Is(err, coupon.ErrInactive):
		return "coupon is not active", true
	case errors.Is(err, coupon.ErrAlreadyUsed):
		return "coupon already used", true
	}
	return "", false
}
