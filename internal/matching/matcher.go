package matching

import (
	"sort"

	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/pkg/currency"
)

// BundleDiscountRate is the fixed discount applied to the experience
// component when it is sold together with the flight.
const BundleDiscountRate = 0.15

// Match keeps experiences whose time window lies fully inside the
// layover and whose duration fits the available city minutes. An
// infeasible layover matches nothing regardless of the experience
// data.
func Match(candidates []models.ExperienceCandidate, window models.TimingWindow, feas models.FeasibilityResult) []models.ExperienceCandidate {
	if !feas.CanLeaveAirport {
		return []models.ExperienceCandidate{}
	}

	matched := make([]models.ExperienceCandidate, 0, len(candidates))
	for _, e := range candidates {
		if !fitsWindow(e, window) {
			continue
		}
		if e.DurationMinutes > feas.AvailableCityMinutes {
			continue
		}
		matched = append(matched, e)
	}

	// Cheapest first so the bundler picks a stable anchor experience.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Price.Amount != matched[j].Price.Amount {
			return matched[i].Price.Amount < matched[j].Price.Amount
		}
		return matched[i].ID < matched[j].ID
	})

	return matched
}

func fitsWindow(e models.ExperienceCandidate, window models.TimingWindow) bool {
	if e.Start.Before(window.Arrival) {
		return false
	}
	if e.End.After(window.Departure) {
		return false
	}
	return !e.End.Before(e.Start)
}

// Bundle prices a flight together with one experience. The discount
// applies to the experience component only, so the total can never go
// negative. Prices must share a currency; mismatches yield no bundle.
func Bundle(flightPrice models.Price, experience models.ExperienceCandidate) *models.BundlePricing {
	if flightPrice.Currency != experience.Price.Currency {
		return nil
	}

	undiscounted := flightPrice.Amount + experience.Price.Amount
	savings := currency.RoundCents(experience.Price.Amount * BundleDiscountRate)
	total := currency.RoundCents(undiscounted - savings)

	var pct float64
	if undiscounted > 0 {
		pct = currency.RoundCents(savings / undiscounted * 100)
	}

	code := flightPrice.Currency
	return &models.BundlePricing{
		TotalPrice: models.Price{
			Amount:    total,
			Currency:  code,
			Formatted: currency.Format(total, code),
		},
		SavingsAmount: models.Price{
			Amount:    savings,
			Currency:  code,
			Formatted: currency.Format(savings, code),
		},
		SavingsPercentage: pct,
	}
}
