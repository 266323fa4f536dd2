// Package handler exposes the storefront and admin HTTP API. It maps
// domain errors onto HTTP statuses and keeps all business logic in the
// injected domain services.
package handler

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/McLovin18/spidey-checkout/internal/domain/auth"
	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
	"github.com/McLovin18/spidey-checkout/internal/domain/coupon"
	"github.com/McLovin18/spidey-checkout/internal/domain/order"
	"github.com/McLovin18/spidey-checkout/internal/domain/product"
	"github.com/McLovin18/spidey-checkout/internal/domain/quiz"
)

// Handler serves the HTTP API, delegating to the injected domain
// repositories and services.
type Handler struct {
	products  product.Repository
	campaigns campaign.Repository
	coupons   coupon.Validator
	issuer    *coupon.Issuer
	quiz      *quiz.Engine
	checkout  *order.Service
	apikeys   auth.Repository
	pepper    []byte
	now       func() time.Time
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(
	products product.Repository,
	campaigns campaign.Repository,
	coupons coupon.Validator,
	issuer *coupon.Issuer,
	quizEngine *quiz.Engine,
	checkout *order.Service,
	apikeys auth.Repository,
	pepper []byte,
) *Handler {
	return &Handler{
		products:  products,
		campaigns: campaigns,
		coupons:   coupons,
		issuer:    issuer,
		quiz:      quizEngine,
		checkout:  checkout,
		apikeys:   apikeys,
		pepper:    pepper,
		now:       time.Now,
	}
}

// Routes builds the API router. The admin subtree requires an API key.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/products", h.ListProducts)
	r.Get("/products/{productID}", h.GetProduct)
	r.Post("/coupons/validate", h.ValidateCoupon)
	r.Get("/quiz", h.QuizQuestion)
	r.Post("/quiz/answer", h.QuizAnswer)
	r.Post("/checkout", h.Checkout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireAPIKey)
		r.Get("/campaigns/seasonal", h.GetSeasonalCampaign)
		r.Put("/campaigns/seasonal", h.PutSeasonalCampaign)
		r.Get("/campaigns/quiz", h.GetQuizCampaign)
		r.Put("/campaigns/quiz", h.PutQuizCampaign)
		r.Get("/campaigns/auto-coupon", h.GetAutoCouponCampaign)
		r.Put("/campaigns/auto-coupon", h.PutAutoCouponCampaign)
		r.Post("/coupons", h.IssueCoupon)
	})

	return r
}
