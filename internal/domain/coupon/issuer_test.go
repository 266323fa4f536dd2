package coupon

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/McLovin18/spidey-checkout/internal/domain/campaign"
)

type mockCampaignRepo struct {
	auto *campaign.AutoCoupon
}

func (m *mockCampaignRepo) GetSeasonal(context.Context) (*campaign.Seasonal, error) { return nil, nil }
func (m *mockCampaignRepo) SaveSeasonal(context.Context, *campaign.Seasonal) error  { return nil }
func (m *mockCampaignRepo) GetQuiz(context.Context) (*campaign.Quiz, error)         { return nil, nil }
func (m *mockCampaignRepo) SaveQuiz(context.Context, *campaign.Quiz) error          { return nil }
func (m *mockCampaignRepo) GetAutoCoupon(context.Context) (*campaign.AutoCoupon, error) {
	return m.auto, nil
}
func (m *mockCampaignRepo) SaveAutoCoupon(context.Context, *campaign.AutoCoupon) error { return nil }

type mockCustomerReader struct {
	counts map[string]int
}

func (m *mockCustomerReader) OrderCount(_ context.Context, userID string) (int, error) {
	return m.counts[userID], nil
}

func TestAutoDue(t *testing.T) {
	tests := []struct {
		count, multiple int
		want            bool
	}{
		{5, 5, true},
		{10, 5, true},
		{4, 5, false},
		{6, 5, false},
		{0, 5, false},
		{1, 1, true},
		{3, 0, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AutoDue(tt.count, tt.multiple),
			"count=%d multiple=%d", tt.count, tt.multiple)
	}
}

func TestMaybeIssueAuto(t *testing.T) {
	ctx := context.Background()

	t.Run("issues on multiple", func(t *testing.T) {
		repo := newCouponRepo()
		iss := NewIssuer(repo, &mockCampaignRepo{
			auto: &campaign.AutoCoupon{Active: true, OrderMultiple: 5, DiscountPercent: 15},
		}, &mockCustomerReader{})

		c, err := iss.MaybeIssueAuto(ctx, "u1", 5)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "u1", c.UserID)
		assert.Equal(t, 15, c.DiscountPercent)
		assert.Equal(t, SourceAuto, c.Source)
		assert.True(t, c.Active)
		assert.Len(t, repo.created, 1)
	})

	t.Run("nothing due off multiple", func(t *testing.T) {
		repo := newCouponRepo()
		iss := NewIssuer(repo, &mockCampaignRepo{
			auto: &campaign.AutoCoupon{Active: true, OrderMultiple: 5, DiscountPercent: 15},
		}, &mockCustomerReader{})

		c, err := iss.MaybeIssueAuto(ctx, "u1", 4)
		require.NoError(t, err)
		assert.Nil(t, c)
		assert.Empty(t, repo.created)
	})

	t.Run("disabled campaign", func(t *testing.T) {
		repo := newCouponRepo()
		iss := NewIssuer(repo, &mockCampaignRepo{
			auto: &campaign.AutoCoupon{Active: false, OrderMultiple: 5, DiscountPercent: 15},
		}, &mockCustomerReader{})

		c, err := iss.MaybeIssueAuto(ctx, "u1", 5)
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("unconfigured campaign", func(t *testing.T) {
		repo := newCouponRepo()
		iss := NewIssuer(repo, &mockCampaignRepo{}, &mockCustomerReader{})

		c, err := iss.MaybeIssueAuto(ctx, "u1", 5)
		require.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestIssueManual(t *testing.T) {
	ctx := context.Background()

	t.Run("eligible customer", func(t *testing.T) {
		repo := newCouponRepo()
		iss := NewIssuer(repo, &mockCampaignRepo{}, &mockCustomerReader{counts: map[string]int{"u1": 3}})

		c, err := iss.IssueManual(ctx, "u1", 25)
		require.NoError(t, err)
		assert.Equal(t, 25, c.DiscountPercent)
		assert.Equal(t, SourceManual, c.Source)
	})

	t.Run("below order threshold", func(t *testing.T) {
		repo := newCouponRepo()
		iss := NewIssuer(repo, &mockCampaignRepo{}, &mockCustomerReader{counts: map[string]int{"u1": 2}})

		_, err := iss.IssueManual(ctx, "u1", 25)
		assert.ErrorIs(t, err, ErrCustomerNotEligible)
		assert.Empty(t, repo.created)
	})

	t.Run("percent out of range", func(t *testing.T) {
		iss := NewIssuer(newCouponRepo(), &mockCampaignRepo{}, &mockCustomerReader{counts: map[string]int{"u1": 10}})

		_, err := iss.IssueManual(ctx, "u1", 0)
		assert.ErrorIs(t, err, campaign.ErrPercentOutOfRange)

		_, err = iss.IssueManual(ctx, "u1", 91)
		assert.ErrorIs(t, err, campaign.ErrPercentOutOfRange)
	})
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		code := GenerateCode()
		assert.True(t, strings.HasPrefix(code, "SPIDEY-"))
		assert.Len(t, code, len("SPIDEY-")+8)
		assert.Equal(t, code, NormalizeCode(code), "codes are already normalized")

		_, dup := seen[code]
		assert.False(t, dup, "generated duplicate code %s", code)
		seen[code] = struct{}{}
	}
}
