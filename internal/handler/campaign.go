package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
	"github.com/McLovin18/spidey-checkout/internal/domain/quiz"
)

// GetSeasonalCampaign returns the seasonal campaign configuration. The
// reported active flag reads as false once the window has ended, even
// while the stored toggle is still on.
func (h *Handler) GetSeasonalCampaign(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.campaigns.GetSeasonal(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if cfg == nil {
		cfg = &campaign.Seasonal{}
	}

	today := campaign.DateOf(h.now())
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("active", func(e *jx.Encoder) {
				e.Bool(campaign.DisplayActive(cfg.Active, cfg.Window, today))
			})
			e.Field("reason", func(e *jx.Encoder) { e.Str(cfg.Reason) })
			e.Field("label", func(e *jx.Encoder) { e.Str(cfg.Label) })
			encodeWindow(e, cfg.Window)
			e.Field("products", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, pd := range cfg.Products {
						e.Obj(func(e *jx.Encoder) {
							e.Field("productId", func(e *jx.Encoder) { e.Str(pd.ProductID) })
							e.Field("percent", func(e *jx.Encoder) { e.Int(pd.Percent) })
						})
					}
				})
			})
		})
	})
}

type seasonalCampaignRequest struct {
	Active    bool   `json:"active"`
	Reason    string `json:"reason"`
	Label     string `json:"label"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Products  []struct {
		ProductID string `json:"productId"`
		Percent   int    `json:"percent"`
	} `json:"products"`
}

// PutSeasonalCampaign replaces the seasonal campaign configuration.
func (h *Handler) PutSeasonalCampaign(w http.ResponseWriter, r *http.Request) {
	var req seasonalCampaignRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	window, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := &campaign.Seasonal{
		Active: req.Active,
		Reason: req.Reason,
		Label:  req.Label,
		Window: window,
	}
	for _, pd := range req.Products {
		cfg.Products = append(cfg.Products, campaign.ProductDiscount{
			ProductID: pd.ProductID,
			Percent:   pd.Percent,
		})
	}

	if err := h.campaigns.SaveSeasonal(r.Context(), cfg); err != nil {
		h.writeCampaignSaveError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetQuizCampaign returns the quiz campaign configuration.
func (h *Handler) GetQuizCampaign(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.campaigns.GetQuiz(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if cfg == nil {
		cfg = &campaign.Quiz{}
	}

	today := campaign.DateOf(h.now())
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("active", func(e *jx.Encoder) {
				e.Bool(campaign.DisplayActive(cfg.Active, cfg.Window, today))
			})
			e.Field("reason", func(e *jx.Encoder) { e.Str(cfg.Reason) })
			encodeWindow(e, cfg.Window)
			e.Field("discountPercent", func(e *jx.Encoder) { e.Int(cfg.DiscountPercent) })
			e.Field("penaltyFee", func(e *jx.Encoder) { e.Str(cfg.PenaltyFee.StringFixed(2)) })
			e.Field("revision", func(e *jx.Encoder) { e.Int64(cfg.Revision) })
		})
	})
}

type quizCampaignRequest struct {
	Active          bool   `json:"active"`
	Reason          string `json:"reason"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	DiscountPercent int    `json:"discountPercent"`
	PenaltyFee      string `json:"penaltyFee"`
}

// PutQuizCampaign replaces the quiz campaign configuration. Every save
// bumps the stored revision, resetting in-flight sessions.
func (h *Handler) PutQuizCampaign(w http.ResponseWriter, r *http.Request) {
	var req quizCampaignRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	window, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := quiz.SetFor(req.Reason); err != nil {
		writeError(w, http.StatusBadRequest, "unknown question set: "+req.Reason)
		return
	}
	penalty := decimal.Zero
	if req.PenaltyFee != "" {
		penalty, err = decimal.NewFromString(req.PenaltyFee)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid penalty fee")
			return
		}
	}

	cfg := &campaign.Quiz{
		Active:          req.Active,
		Reason:          req.Reason,
		Window:          window,
		DiscountPercent: req.DiscountPercent,
		PenaltyFee:      penalty,
	}
	if err := h.campaigns.SaveQuiz(r.Context(), cfg); err != nil {
		h.writeCampaignSaveError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAutoCouponCampaign returns the automatic coupon grant configuration.
func (h *Handler) GetAutoCouponCampaign(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.campaigns.GetAutoCoupon(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if cfg == nil {
		cfg = &campaign.AutoCoupon{}
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("active", func(e *jx.Encoder) { e.Bool(cfg.Active) })
			e.Field("orderMultiple", func(e *jx.Encoder) { e.Int(cfg.OrderMultiple) })
			e.Field("discountPercent", func(e *jx.Encoder) { e.Int(cfg.DiscountPercent) })
		})
	})
}

type autoCouponCampaignRequest struct {
	Active          bool `json:"active"`
	OrderMultiple   int  `json:"orderMultiple"`
	DiscountPercent int  `json:"discountPercent"`
}

// PutAutoCouponCampaign replaces the automatic coupon grant configuration.
func (h *Handler) PutAutoCouponCampaign(w http.ResponseWriter, r *http.Request) {
	var req autoCouponCampaignRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := &campaign.AutoCoupon{
		Active:          req.Active,
		OrderMultiple:   req.OrderMultiple,
		DiscountPercent: req.DiscountPercent,
	}
	if err := h.campaigns.SaveAutoCoupon(r.Context(), cfg); err != nil {
		h.writeCampaignSaveError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCampaignSaveError maps configuration validation failures to 400 and
// everything else to 500.
func (h *Handler) writeCampaignSaveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errorsIsAny(err,
		campaign.ErrPercentOutOfRange,
		campaign.ErrInvalidWindow,
		campaign.ErrInvalidOrderMultiple,
		campaign.ErrNegativePenalty,
	):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, r, err)
	}
}

func encodeWindow(e *jx.Encoder, w campaign.Window) {
	if w.Start != nil {
		e.Field("startDate", func(e *jx.Encoder) { e.Str(w.Start.String()) })
	}
	if w.End != nil {
		e.Field("endDate", func(e *jx.Encoder) { e.Str(w.End.String()) })
	}
}

func parseWindow(start, end string) (campaign.Window, error) {
	var w campaign.Window
	if start != "" {
		d, err := campaign.ParseDate(start)
		if err != nil {
			return w, err
		}
		w.Start = &d
	}
	if end != "" {
		d, err := campaign.ParseDate(end)
		if err != nil {
			return w, err
		}
		w.End = &d
	}
	return w, nil
}
