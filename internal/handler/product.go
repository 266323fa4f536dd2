package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
	"github.com/McLovin18/spidey-checkout/internal/domain/product"
)

// ListProducts returns the catalog with seasonal pricing resolved for
// today. An optional category query parameter restricts the listing.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.products.List(ctx, r.URL.Query().Get("category"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	seasonal, err := h.campaigns.GetSeasonal(ctx)
	if err != nil {
		internalError(w, r, err)
		return
	}

	today := campaign.DateOf(h.now())
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, p := range products {
				encodePricedProduct(e, campaign.ResolvePrice(seasonal, p, today))
			}
		})
	})
}

// GetProduct returns one product with seasonal pricing resolved for today.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "productID")

	p, err := h.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		internalError(w, r, err)
		return
	}
	seasonal, err := h.campaigns.GetSeasonal(ctx)
	if err != nil {
		internalError(w, r, err)
		return
	}

	pp := campaign.ResolvePrice(seasonal, *p, campaign.DateOf(h.now()))
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodePricedProduct(e, pp)
	})
}

// encodePricedProduct writes one catalog entry. The discount fields appear
// only when a seasonal discount applies today.
func encodePricedProduct(e *jx.Encoder, p campaign.PricedProduct) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Str(p.EffectivePrice.StringFixed(2)) })
		e.Field("category", func(e *jx.Encoder) { e.Str(p.Category) })
		if p.Discounted() {
			e.Field("originalPrice", func(e *jx.Encoder) { e.Str(p.OriginalPrice.StringFixed(2)) })
			e.Field("discountPercent", func(e *jx.Encoder) { e.Int(p.DiscountPercent) })
		}
		e.Field("image", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("thumbnail", func(e *jx.Encoder) { e.Str(p.Image.Thumbnail) })
				e.Field("mobile", func(e *jx.Encoder) { e.Str(p.Image.Mobile) })
				e.Field("tablet", func(e *jx.Encoder) { e.Str(p.Image.Tablet) })
				e.Field("desktop", func(e *jx.Encoder) { e.Str(p.Image.Desktop) })
			})
		})
	})
}
