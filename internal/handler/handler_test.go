package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/McLovin18/spidey-checkout/internal/domain/auth"
	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
	"github.com/McLovin18/spidey-checkout/internal/domain/coupon"
	"github.com/McLovin18/spidey-checkout/internal/domain/order"
	"github.com/McLovin18/spidey-checkout/internal/domain/product"
	"github.com/McLovin18/spidey-checkout/internal/domain/quiz"
	"github.com/McLovin18/spidey-checkout/internal/notify"
	"github.com/McLovin18/spidey-checkout/internal/payment"
)

// --- Mock implementations ---

type stubProductRepo struct {
	products []product.Product
}

func (s *stubProductRepo) List(_ context.Context, category string) ([]product.Product, error) {
	if category == "" {
		return s.products, nil
	}
	var out []product.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, product.ErrNotFound
}

func (s *stubProductRepo) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	var out []product.Product
	for _, id := range ids {
		for _, p := range s.products {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// stubCampaignRepo validates on save the same way the persistent
// repository does.
type stubCampaignRepo struct {
	seasonal *campaign.Seasonal
	quiz     *campaign.Quiz
	auto     *campaign.AutoCoupon
}

func (s *stubCampaignRepo) GetSeasonal(context.Context) (*campaign.Seasonal, error) {
	return s.seasonal, nil
}

func (s *stubCampaignRepo) SaveSeasonal(_ context.Context, cfg *campaign.Seasonal) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.seasonal = cfg
	return nil
}

func (s *stubCampaignRepo) GetQuiz(context.Context) (*campaign.Quiz, error) { return s.quiz, nil }

func (s *stubCampaignRepo) SaveQuiz(_ context.Context, cfg *campaign.Quiz) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	rev := int64(1)
	if s.quiz != nil {
		rev = s.quiz.Revision + 1
	}
	cfg.Revision = rev
	s.quiz = cfg
	return nil
}

func (s *stubCampaignRepo) GetAutoCoupon(context.Context) (*campaign.AutoCoupon, error) {
	return s.auto, nil
}

func (s *stubCampaignRepo) SaveAutoCoupon(_ context.Context, cfg *campaign.AutoCoupon) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.auto = cfg
	return nil
}

type stubValidator struct {
	coupon *coupon.Coupon
	err    error
}

func (s *stubValidator) Validate(context.Context, string, string) (*coupon.Coupon, error) {
	return s.coupon, s.err
}

type stubCouponRepo struct {
	created []*coupon.Coupon
}

func (s *stubCouponRepo) FindByCode(context.Context, string) (*coupon.Coupon, error) {
	return nil, coupon.ErrNotFound
}

func (s *stubCouponRepo) Create(_ context.Context, c *coupon.Coupon) error {
	s.created = append(s.created, c)
	return nil
}

func (s *stubCouponRepo) RedeemOnce(context.Context, string, string, string) error { return nil }

type stubProvider struct {
	err error
}

func (s *stubProvider) Capture(_ context.Context, req payment.CaptureRequest) (*payment.Confirmation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &payment.Confirmation{TransactionID: "txn-1", Amount: req.Amount, Currency: req.Currency}, nil
}

type stubOrderRepo struct {
	created []*order.Order
}

func (s *stubOrderRepo) Create(_ context.Context, o *order.Order) error {
	s.created = append(s.created, o)
	return nil
}

func (s *stubOrderRepo) Delete(context.Context, string) error { return nil }

type stubStock struct {
	err error
}

func (s *stubStock) Reserve(context.Context, []order.Item) error { return s.err }

type stubCustomers struct {
	count int
}

func (s *stubCustomers) IncrementOrderCount(context.Context, string, string) (int, error) {
	s.count++
	return s.count, nil
}

func (s *stubCustomers) OrderCount(context.Context, string) (int, error) { return s.count, nil }

type stubNotifier struct{}

func (stubNotifier) OrderConfirmation(context.Context, notify.OrderEmail) {}

type stubAPIKeyRepo struct {
	byHash map[string]*auth.APIKeyInfo
}

func (s *stubAPIKeyRepo) FindByHash(_ context.Context, hash string) (*auth.APIKeyInfo, error) {
	if info, ok := s.byHash[hash]; ok {
		return info, nil
	}
	return nil, auth.ErrKeyNotFound
}

// --- Fixture ---

var testPepper = []byte("test-pepper")

const testAPIKey = "admin-key-1"

type fixture struct {
	products  *stubProductRepo
	campaigns *stubCampaignRepo
	validator *stubValidator
	coupons   *stubCouponRepo
	provider  *stubProvider
	orders    *stubOrderRepo
	stock     *stubStock
	apikeys   *stubAPIKeyRepo
	engine    *quiz.Engine
	srv       *httptest.Server
}

func keyHash(key string) string {
	mac := hmac.New(sha256.New, testPepper)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

func newFixture(t *testing.T, products ...product.Product) *fixture {
	t.Helper()

	hash := keyHash(testAPIKey)
	f := &fixture{
		products:  &stubProductRepo{products: products},
		campaigns: &stubCampaignRepo{},
		validator: &stubValidator{},
		coupons:   &stubCouponRepo{},
		provider:  &stubProvider{},
		orders:    &stubOrderRepo{},
		stock:     &stubStock{},
		apikeys: &stubAPIKeyRepo{byHash: map[string]*auth.APIKeyInfo{
			hash: {ID: "default", KeyHash: hash, Name: "test", Scopes: []string{"admin"}},
		}},
	}
	f.engine = quiz.NewEngine(f.campaigns, quiz.NewMemoryStore())

	customers := &stubCustomers{}
	issuer := coupon.NewIssuer(f.coupons, f.campaigns, customers)
	checkout := order.NewService(
		f.products, f.campaigns, f.validator, f.coupons,
		f.engine, f.provider, f.orders, f.stock, customers,
		issuer, stubNotifier{}, zap.NewNop(),
	)

	h := NewHandler(f.products, f.campaigns, f.validator, issuer, f.engine, checkout, f.apikeys, testPepper)
	h.now = func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) }

	f.srv = httptest.NewServer(h.Routes())
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func adminHeaders() map[string]string {
	return map[string]string{"X-API-Key": testAPIKey}
}

func catalogProduct(id, price string) product.Product {
	return product.Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price), Category: "suits"}
}

// --- Catalog ---

func TestListProducts(t *testing.T) {
	f := newFixture(t, catalogProduct("p1", "80.00"), catalogProduct("p2", "30.00"))
	f.campaigns.seasonal = &campaign.Seasonal{
		Active:   true,
		Products: []campaign.ProductDiscount{{ProductID: "p1", Percent: 20}},
	}

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/products", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)

	assert.Equal(t, "80.00", list[0]["price"])
	assert.Equal(t, "100.00", list[0]["originalPrice"])
	assert.Equal(t, float64(20), list[0]["discountPercent"])

	assert.Equal(t, "30.00", list[1]["price"])
	assert.NotContains(t, list[1], "originalPrice")
	assert.NotContains(t, list[1], "discountPercent")
}

func TestListProductsByCategory(t *testing.T) {
	accessory := catalogProduct("p9", "12.00")
	accessory.Category = "accessories"
	f := newFixture(t, catalogProduct("p1", "80.00"), accessory)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/products?category=accessories", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "p9", list[0]["id"])
}

func TestGetProduct(t *testing.T) {
	f := newFixture(t, catalogProduct("p1", "50.00"))

	status, body := f.do(t, http.MethodGet, "/products/p1", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "p1", body["id"])
	assert.Equal(t, "50.00", body["price"])

	status, body = f.do(t, http.MethodGet, "/products/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "product not found", body["message"])
}

func TestGetProductOutsideWindow(t *testing.T) {
	f := newFixture(t, catalogProduct("p1", "80.00"))
	end := campaign.Date("2026-05-31")
	f.campaigns.seasonal = &campaign.Seasonal{
		Active:   true,
		Window:   campaign.Window{End: &end},
		Products: []campaign.ProductDiscount{{ProductID: "p1", Percent: 20}},
	}

	status, body := f.do(t, http.MethodGet, "/products/p1", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "80.00", body["price"])
	assert.NotContains(t, body, "originalPrice")
}

// --- Coupons ---

func TestValidateCoupon(t *testing.T) {
	f := newFixture(t)

	t.Run("missing fields", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPost, "/coupons/validate", map[string]string{"code": "X"}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("valid", func(t *testing.T) {
		f.validator.coupon = &coupon.Coupon{Code: "SPIDEY-OK", UserID: "u1", DiscountPercent: 15, Active: true}
		f.validator.err = nil

		status, body := f.do(t, http.MethodPost, "/coupons/validate",
			map[string]string{"code": "SPIDEY-OK", "userId": "u1"}, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["valid"])
		assert.Equal(t, float64(15), body["discountPercent"])
	})

	t.Run("rejected", func(t *testing.T) {
		f.validator.coupon = nil
		f.validator.err = coupon.ErrNotOwner

		status, body := f.do(t, http.MethodPost, "/coupons/validate",
			map[string]string{"code": "SPIDEY-OK", "userId": "u2"}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, "coupon belongs to another customer", body["message"])
	})
}

func TestIssueCoupon(t *testing.T) {
	f := newFixture(t)

	t.Run("requires api key", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPost, "/admin/coupons",
			map[string]any{"userId": "u1", "percent": 10}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("customer not eligible", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPost, "/admin/coupons",
			map[string]any{"userId": "u1", "percent": 10}, adminHeaders())
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("percent out of range", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPost, "/admin/coupons",
			map[string]any{"userId": "u1", "percent": 95}, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

// --- Quiz ---

func activeQuiz() *campaign.Quiz {
	return &campaign.Quiz{
		Active:          true,
		Reason:          "football",
		DiscountPercent: 10,
		PenaltyFee:      decimal.RequireFromString("2.00"),
		Revision:        1,
	}
}

func TestQuizQuestion(t *testing.T) {
	f := newFixture(t)

	t.Run("no campaign", func(t *testing.T) {
		status, _ := f.do(t, http.MethodGet, "/quiz?userId=u1", nil, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("question is stable per user", func(t *testing.T) {
		f.campaigns.quiz = activeQuiz()

		status, first := f.do(t, http.MethodGet, "/quiz?userId=u1", nil, nil)
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, first["question"])
		assert.Equal(t, float64(10), first["discountPercent"])
		assert.Equal(t, "2.00", first["penaltyFee"])
		assert.Equal(t, false, first["answered"])

		_, second := f.do(t, http.MethodGet, "/quiz?userId=u1", nil, nil)
		assert.Equal(t, first["question"], second["question"])
	})

	t.Run("missing user", func(t *testing.T) {
		status, _ := f.do(t, http.MethodGet, "/quiz", nil, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestQuizAnswer(t *testing.T) {
	f := newFixture(t)
	f.campaigns.quiz = activeQuiz()

	t.Run("empty answer", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPost, "/quiz/answer",
			map[string]string{"userId": "u1", "answer": "  "}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("single attempt", func(t *testing.T) {
		status, body := f.do(t, http.MethodPost, "/quiz/answer",
			map[string]string{"userId": "u1", "answer": "some guess"}, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, []any{"correct", "incorrect"}, body["outcome"])
		if body["outcome"] == "correct" {
			assert.Equal(t, float64(10), body["discountPercent"])
		} else {
			assert.Equal(t, "2.00", body["penaltyFee"])
		}

		status, _ = f.do(t, http.MethodPost, "/quiz/answer",
			map[string]string{"userId": "u1", "answer": "second guess"}, nil)
		assert.Equal(t, http.StatusConflict, status)
	})
}

// --- Checkout ---

func checkoutBody(items ...map[string]any) map[string]any {
	return map[string]any{
		"userId":           "u1",
		"email":            "u1@example.com",
		"items":            items,
		"deliveryLocation": "123 Main St",
		"paymentMethod":    "pm_card_visa",
		"currency":         "USD",
	}
}

func TestCheckout(t *testing.T) {
	f := newFixture(t, catalogProduct("p1", "25.00"))

	status, body := f.do(t, http.MethodPost, "/checkout",
		checkoutBody(map[string]any{"productId": "p1", "quantity": 2}), nil)
	require.Equal(t, http.StatusCreated, status)

	assert.Equal(t, "50.00", body["subtotal"])
	assert.Equal(t, "50.00", body["total"])
	assert.Equal(t, "txn-1", body["transactionId"])
	assert.NotEmpty(t, body["id"])
	require.Len(t, f.orders.created, 1)
}

func TestCheckoutErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(f *fixture)
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "empty items",
			body:       checkoutBody(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing delivery location",
			body: func() map[string]any {
				b := checkoutBody(map[string]any{"productId": "p1", "quantity": 1})
				delete(b, "deliveryLocation")
				return b
			}(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero quantity",
			body:       checkoutBody(map[string]any{"productId": "p1", "quantity": 0}),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown product",
			body:       checkoutBody(map[string]any{"productId": "ghost", "quantity": 1}),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:  "coupon already used",
			setup: func(f *fixture) { f.validator.err = coupon.ErrAlreadyUsed },
			body: func() map[string]any {
				b := checkoutBody(map[string]any{"productId": "p1", "quantity": 1})
				b["couponCode"] = "SPIDEY-SPENT"
				return b
			}(),
			wantStatus: http.StatusConflict,
		},
		{
			name:  "coupon not found",
			setup: func(f *fixture) { f.validator.err = coupon.ErrNotFound },
			body: func() map[string]any {
				b := checkoutBody(map[string]any{"productId": "p1", "quantity": 1})
				b["couponCode"] = "SPIDEY-GHOST"
				return b
			}(),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "payment declined",
			setup: func(f *fixture) {
				f.provider.err = &payment.ProviderError{Code: "card_declined", Message: "card declined"}
			},
			body:       checkoutBody(map[string]any{"productId": "p1", "quantity": 1}),
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:       "out of stock",
			setup:      func(f *fixture) { f.stock.err = order.ErrOutOfStock },
			body:       checkoutBody(map[string]any{"productId": "p1", "quantity": 1}),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, catalogProduct("p1", "25.00"))
			if tt.setup != nil {
				tt.setup(f)
			}
			status, body := f.do(t, http.MethodPost, "/checkout", tt.body, nil)
			assert.Equal(t, tt.wantStatus, status)
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestCheckoutMalformedBody(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/checkout", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// --- Admin campaigns ---

func TestRequireAPIKey(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{"missing key", nil, http.StatusUnauthorized},
		{"unknown key", map[string]string{"X-API-Key": "wrong"}, http.StatusUnauthorized},
		{"valid key", adminHeaders(), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := f.do(t, http.MethodGet, "/admin/campaigns/auto-coupon", nil, tt.headers)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestSeasonalCampaignRoundTrip(t *testing.T) {
	f := newFixture(t)

	put := map[string]any{
		"active":    true,
		"reason":    "summer",
		"label":     "Summer Sale",
		"startDate": "2026-06-01",
		"endDate":   "2026-06-30",
		"products":  []map[string]any{{"productId": "p1", "percent": 20}},
	}
	status, _ := f.do(t, http.MethodPut, "/admin/campaigns/seasonal", put, adminHeaders())
	require.Equal(t, http.StatusNoContent, status)

	status, body := f.do(t, http.MethodGet, "/admin/campaigns/seasonal", nil, adminHeaders())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["active"])
	assert.Equal(t, "Summer Sale", body["label"])
	assert.Equal(t, "2026-06-01", body["startDate"])
	assert.Equal(t, "2026-06-30", body["endDate"])
}

func TestSeasonalCampaignDisplayActive(t *testing.T) {
	f := newFixture(t)
	end := campaign.Date("2026-05-31")
	f.campaigns.seasonal = &campaign.Seasonal{
		Active: true,
		Window: campaign.Window{End: &end},
	}

	// Stored toggle is on but the window has ended; reads report inactive.
	status, body := f.do(t, http.MethodGet, "/admin/campaigns/seasonal", nil, adminHeaders())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["active"])
}

func TestSeasonalCampaignBadInput(t *testing.T) {
	f := newFixture(t)

	t.Run("malformed date", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPut, "/admin/campaigns/seasonal",
			map[string]any{"startDate": "June 1st"}, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("percent out of range", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPut, "/admin/campaigns/seasonal",
			map[string]any{
				"products": []map[string]any{{"productId": "p1", "percent": 95}},
			}, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("inverted window", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPut, "/admin/campaigns/seasonal",
			map[string]any{"startDate": "2026-06-30", "endDate": "2026-06-01"}, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestQuizCampaignSaveBumpsRevision(t *testing.T) {
	f := newFixture(t)

	put := map[string]any{
		"active":          true,
		"reason":          "football",
		"discountPercent": 10,
		"penaltyFee":      "2.00",
	}
	status, _ := f.do(t, http.MethodPut, "/admin/campaigns/quiz", put, adminHeaders())
	require.Equal(t, http.StatusNoContent, status)

	status, body := f.do(t, http.MethodGet, "/admin/campaigns/quiz", nil, adminHeaders())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["revision"])

	status, _ = f.do(t, http.MethodPut, "/admin/campaigns/quiz", put, adminHeaders())
	require.Equal(t, http.StatusNoContent, status)

	_, body = f.do(t, http.MethodGet, "/admin/campaigns/quiz", nil, adminHeaders())
	assert.Equal(t, float64(2), body["revision"])
}

func TestQuizCampaignUnknownReason(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodPut, "/admin/campaigns/quiz",
		map[string]any{"reason": "astrology", "discountPercent": 10}, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "unknown question set")
}

func TestAutoCouponCampaignRoundTrip(t *testing.T) {
	f := newFixture(t)

	put := map[string]any{"active": true, "orderMultiple": 5, "discountPercent": 15}
	status, _ := f.do(t, http.MethodPut, "/admin/campaigns/auto-coupon", put, adminHeaders())
	require.Equal(t, http.StatusNoContent, status)

	status, body := f.do(t, http.MethodGet, "/admin/campaigns/auto-coupon", nil, adminHeaders())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["active"])
	assert.Equal(t, float64(5), body["orderMultiple"])
	assert.Equal(t, float64(15), body["discountPercent"])

	t.Run("invalid multiple", func(t *testing.T) {
		status, _ := f.do(t, http.MethodPut, "/admin/campaigns/auto-coupon",
			map[string]any{"active": true, "orderMultiple": 0, "discountPercent": 15}, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
