package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripweaver/layover-engine/internal/models"
)

func usd(amount float64) models.Price {
	return models.Price{Amount: amount, Currency: "USD"}
}

func TestCalculate_BaseRate(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	result := c.Calculate(usd(50), StrategyContext{})

	assert.InDelta(t, 10.0, result.CommissionAmount.Amount, 0.001)
	assert.InDelta(t, 40.0, result.PartnerPayout.Amount, 0.001)
	assert.Equal(t, []string{"base_rate"}, result.AppliedStrategies)
}

func TestCalculate_PayoutPlusCommissionEqualsPrice(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	for _, price := range []float64{50, 80, 33.33, 0.01, 1299.99} {
		result := c.Calculate(usd(price), StrategyContext{LoyaltyTier: "gold", PromoActive: true})
		assert.InDelta(t, price, result.PartnerPayout.Amount+result.CommissionAmount.Amount, 0.001, "price %v", price)
	}
}

func TestCalculate_PlatformRevenueNeverExceedsCommission(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	for _, sctx := range []StrategyContext{
		{},
		{LoyaltyTier: "platinum"},
		{PromoActive: true},
		{LoyaltyTier: "silver", PromoActive: true},
	} {
		result := c.Calculate(usd(120), sctx)
		assert.LessOrEqual(t, result.PlatformRevenue.Amount, result.CommissionAmount.Amount)
	}
}

func TestCalculate_LoyaltyAdjustments(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	gold := c.Calculate(usd(100), StrategyContext{LoyaltyTier: "Gold"})
	assert.InDelta(t, 24.0, gold.CommissionAmount.Amount, 0.001)
	assert.Contains(t, gold.AppliedStrategies, "loyalty_gold")

	platinum := c.Calculate(usd(100), StrategyContext{LoyaltyTier: "platinum"})
	assert.InDelta(t, 26.0, platinum.CommissionAmount.Amount, 0.001)
}

func TestCalculate_PromoLowersRate(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	promo := c.Calculate(usd(100), StrategyContext{PromoActive: true})
	assert.InDelta(t, 15.0, promo.CommissionAmount.Amount, 0.001)
	assert.Contains(t, promo.AppliedStrategies, "promo_campaign")
}

func TestCalculate_RateBoundedBothEnds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseRate = 0.34
	c := NewCalculator(cfg)

	// 0.34 + 0.06 would be 0.40; clamped to MaxRate 0.35.
	capped := c.Calculate(usd(100), StrategyContext{LoyaltyTier: "platinum"})
	assert.InDelta(t, 35.0, capped.CommissionAmount.Amount, 0.001)

	cfg = DefaultConfig()
	cfg.BaseRate = 0.06
	c = NewCalculator(cfg)

	// 0.06 - 0.05 would be 0.01; floored at MinRate 0.05.
	floored := c.Calculate(usd(100), StrategyContext{PromoActive: true})
	assert.InDelta(t, 5.0, floored.CommissionAmount.Amount, 0.001)
}

func TestCalculate_MissingStrategyDataFallsBackToBase(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	result := c.Calculate(usd(200), StrategyContext{LoyaltyTier: "unknown-tier"})

	assert.InDelta(t, 40.0, result.CommissionAmount.Amount, 0.001)
	assert.Equal(t, []string{"base_rate"}, result.AppliedStrategies)
}

func TestCalculate_BookingProbabilityInUnitInterval(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	for _, sctx := range []StrategyContext{
		{Rating: 0},
		{Rating: 3.2},
		{Rating: 4.9},
	} {
		for _, price := range []float64{10, 75, 500} {
			p := c.Calculate(usd(price), sctx).BookingProbability
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestSummarize_TwoExperiencesAtTwentyPercent(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	results := []models.CommissionResult{
		c.Calculate(usd(50), StrategyContext{}),
		c.Calculate(usd(80), StrategyContext{}),
	}
	summary := Summarize(results)

	assert.InDelta(t, 26.0, summary.TotalCommission.Amount, 0.001)
	assert.InDelta(t, 104.0, summary.PartnerPayout.Amount, 0.001)
	assert.Equal(t, 2, summary.Experiences)
	assert.Equal(t, "USD", summary.TotalCommission.Currency)
}

func TestSummarize_PlatformRevenueIsSumOfParts(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	r1 := c.Calculate(usd(50), StrategyContext{})
	r2 := c.Calculate(usd(80), StrategyContext{})
	summary := Summarize([]models.CommissionResult{r1, r2})

	assert.InDelta(t, r1.PlatformRevenue.Amount+r2.PlatformRevenue.Amount, summary.PlatformRevenue.Amount, 0.001)
	assert.LessOrEqual(t, summary.PlatformRevenue.Amount, summary.TotalCommission.Amount)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.Experiences)
	assert.Equal(t, 0.0, summary.TotalCommission.Amount)
}
