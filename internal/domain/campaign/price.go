package campaign

import (
	"github.com/shopspring/decimal"

	"github.com/McLovin18/spidey-checkout/internal/domain/product"
)

var hundred = decimal.NewFromInt(100)

// PricedProduct is a catalog product with seasonal pricing resolved for a
// particular day. EffectivePrice is what the customer is charged.
// OriginalPrice is a display-only reconstruction of the pre-discount price
// (price divided by 1 - percent/100); it must never feed back into a
// charged total.
type PricedProduct struct {
	product.Product
	EffectivePrice  decimal.Decimal
	DiscountPercent int
	OriginalPrice   decimal.Decimal
}

// Discounted reports whether a seasonal discount applies to this product.
func (p PricedProduct) Discounted() bool { return p.DiscountPercent > 0 }

// ResolvePrice resolves the seasonal pricing of p for the given day. The
// catalog price is the single source of truth: when the campaign lists the
// product, the catalog price is treated as already discounted and the
// original price is reconstructed for display.
func ResolvePrice(cfg *Seasonal, p product.Product, day Date) PricedProduct {
	out := PricedProduct{
		Product:        p,
		EffectivePrice: p.Price.Round(2),
	}

	pct, ok := cfg.DiscountFor(p.ID, day)
	if !ok {
		return out
	}

	out.DiscountPercent = pct
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(pct)).Div(hundred))
	if factor.IsPositive() {
		out.OriginalPrice = p.Price.Div(factor).Round(2)
	}
	return out
}
