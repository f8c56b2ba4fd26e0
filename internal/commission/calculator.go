package commission

import (
	"strings"

	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/pkg/currency"
)

// Config bounds the commission math. BaseRate applies when no strategy
// adjustment does; the composed rate is clamped to [MinRate, MaxRate]
// so commission can never exceed price.
type Config struct {
	BaseRate      float64
	MinRate       float64
	MaxRate       float64
	PlatformShare float64
}

func DefaultConfig() Config {
	return Config{
		BaseRate:      0.20,
		MinRate:       0.05,
		MaxRate:       0.35,
		PlatformShare: 0.85,
	}
}

// StrategyContext carries what is known about the booking when the
// rate is composed. Zero values are valid: missing strategy data falls
// back to the base rate rather than failing the booking.
type StrategyContext struct {
	LoyaltyTier string
	PromoActive bool
	Rating      float64
	PriceTier   string
}

var loyaltyAdjustments = map[string]float64{
	"silver":   0.02,
	"gold":     0.04,
	"platinum": 0.06,
}

const promoAdjustment = -0.05

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate derives commission, platform revenue and partner payout
// for one experience. PartnerPayout is price minus the cent-rounded
// commission, so the two always reconcile exactly.
func (c *Calculator) Calculate(price models.Price, sctx StrategyContext) models.CommissionResult {
	rate := c.cfg.BaseRate
	applied := []string{"base_rate"}

	if adj, ok := loyaltyAdjustments[strings.ToLower(sctx.LoyaltyTier)]; ok {
		rate += adj
		applied = append(applied, "loyalty_"+strings.ToLower(sctx.LoyaltyTier))
	}
	if sctx.PromoActive {
		rate += promoAdjustment
		applied = append(applied, "promo_campaign")
	}

	if rate < c.cfg.MinRate {
		rate = c.cfg.MinRate
	}
	if rate > c.cfg.MaxRate {
		rate = c.cfg.MaxRate
	}

	commission := currency.RoundCents(price.Amount * rate)
	payout := currency.RoundCents(price.Amount - commission)
	revenue := currency.RoundCents(commission * c.cfg.PlatformShare)

	code := price.Currency
	return models.CommissionResult{
		ExperiencePrice:    price,
		CommissionAmount:   models.Price{Amount: commission, Currency: code, Formatted: currency.Format(commission, code)},
		PlatformRevenue:    models.Price{Amount: revenue, Currency: code, Formatted: currency.Format(revenue, code)},
		PartnerPayout:      models.Price{Amount: payout, Currency: code, Formatted: currency.Format(payout, code)},
		AppliedStrategies:  applied,
		BookingProbability: bookingProbability(sctx.Rating, price.Amount),
	}
}

// Summarize folds per-experience results into the booking-level
// totals. Currencies are taken from the first result; callers validate
// selections share one currency before committing money.
func Summarize(results []models.CommissionResult) models.BookingSummary {
	var totalCommission, totalRevenue, totalPayout float64
	code := ""
	for _, r := range results {
		if code == "" {
			code = r.ExperiencePrice.Currency
		}
		totalCommission += r.CommissionAmount.Amount
		totalRevenue += r.PlatformRevenue.Amount
		totalPayout += r.PartnerPayout.Amount
	}

	totalCommission = currency.RoundCents(totalCommission)
	totalRevenue = currency.RoundCents(totalRevenue)
	totalPayout = currency.RoundCents(totalPayout)

	return models.BookingSummary{
		TotalCommission: models.Price{Amount: totalCommission, Currency: code, Formatted: currency.Format(totalCommission, code)},
		PlatformRevenue: models.Price{Amount: totalRevenue, Currency: code, Formatted: currency.Format(totalRevenue, code)},
		PartnerPayout:   models.Price{Amount: totalPayout, Currency: code, Formatted: currency.Format(totalPayout, code)},
		Experiences:     len(results),
	}
}

// bookingProbability is a reporting-only estimate in [0,1]; it never
// alters the committed price.
func bookingProbability(rating, price float64) float64 {
	p := 0.35
	if rating >= 4.5 {
		p += 0.25
	} else if rating >= 4.0 {
		p += 0.15
	} else if rating >= 3.0 {
		p += 0.05
	}

	switch {
	case price <= 50:
		p += 0.20
	case price <= 120:
		p += 0.10
	}

	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}
