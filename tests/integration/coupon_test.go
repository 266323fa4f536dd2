//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestValidateCoupon_Seeded(t *testing.T) {
	body := map[string]string{"code": "SPIDEY-WELCOME1", "userId": "demo-user"}
	resp := doPost(t, "/api/coupons/validate", body)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusOK)

	v := decodeJSON[couponValidationResponse](t, resp)
	if !v.Valid {
		t.Error("expected valid coupon")
	}
	if v.DiscountPercent != 15 {
		t.Errorf("discountPercent: got %d, want 15", v.DiscountPercent)
	}
}

func TestValidateCoupon_CaseInsensitive(t *testing.T) {
	body := map[string]string{"code": "  spidey-loyal001 ", "userId": "demo-user"}
	resp := doPost(t, "/api/coupons/validate", body)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusOK)

	v := decodeJSON[couponValidationResponse](t, resp)
	if v.Code != "SPIDEY-LOYAL001" {
		t.Errorf("code: got %q, want normalized SPIDEY-LOYAL001", v.Code)
	}
}

func TestValidateCoupon_WrongOwner(t *testing.T) {
	body := map[string]string{"code": "SPIDEY-WELCOME1", "userId": "someone-else"}
	resp := doPost(t, "/api/coupons/validate", body)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusUnprocessableEntity)
}

func TestValidateCoupon_Unknown(t *testing.T) {
	body := map[string]string{"code": "SPIDEY-GHOST999", "userId": "demo-user"}
	resp := doPost(t, "/api/coupons/validate", body)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusUnprocessableEntity)
}

func TestValidateCoupon_MissingFields(t *testing.T) {
	resp := doPost(t, "/api/coupons/validate", map[string]string{"code": "SPIDEY-WELCOME1"})
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestIssueCoupon_NotEligible(t *testing.T) {
	// A customer with no order history cannot receive a manual grant.
	body := map[string]any{"userId": "brand-new-user", "percent": 10}
	resp := doRequest(t, http.MethodPost, "/api/admin/coupons", body, testAPIKey)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusUnprocessableEntity)
}
