package insights

import (
	"math"
	"sort"

	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/internal/scoring"
)

// Categorization thresholds. An opportunity may land in zero or more
// categories.
const (
	WeatherFriendlyThreshold = 70.0
	QuickExploreMinMinutes   = 120
	QuickExploreMaxMinutes   = 300
)

// Aggregate ranks the scored set, picks the best, buckets opportunities
// into categories and computes market statistics. Pure: re-running on
// an unchanged set yields identical output.
func Aggregate(opportunities []models.Opportunity) models.Insights {
	sorted := make([]models.Opportunity, len(opportunities))
	copy(sorted, opportunities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scoring.Less(sorted[i], sorted[j])
	})

	var best *models.Opportunity
	if len(sorted) > 0 {
		best = &sorted[0]
	}

	return models.Insights{
		Best:       best,
		Categories: categorize(sorted),
	}
}

func categorize(sorted []models.Opportunity) models.Categories {
	cats := models.Categories{
		WeatherFriendly: []models.Opportunity{},
		QuickExplore:    []models.Opportunity{},
		ExtendedStay:    []models.Opportunity{},
	}

	for _, o := range sorted {
		if o.Feasible() && o.Scores.Weather >= WeatherFriendlyThreshold {
			cats.WeatherFriendly = append(cats.WeatherFriendly, o)
		}
		d := o.Window.DurationMinutes
		if d >= QuickExploreMinMinutes && d <= QuickExploreMaxMinutes {
			cats.QuickExplore = append(cats.QuickExplore, o)
		}
		if d > QuickExploreMaxMinutes {
			cats.ExtendedStay = append(cats.ExtendedStay, o)
		}
	}

	return cats
}

// MarketStats runs over the full opportunity set, not just the
// feasible slice, so the market view survives feasibility rejections.
func MarketStats(opportunities []models.Opportunity) models.MarketStats {
	if len(opportunities) == 0 {
		return models.MarketStats{Cities: []string{}}
	}

	var durationSum int
	minPrice := opportunities[0].Candidate.Price
	maxPrice := opportunities[0].Candidate.Price
	seen := make(map[string]bool)
	cities := make([]string, 0, len(opportunities))

	for _, o := range opportunities {
		durationSum += o.Window.DurationMinutes
		if o.Candidate.Price.Amount < minPrice.Amount {
			minPrice = o.Candidate.Price
		}
		if o.Candidate.Price.Amount > maxPrice.Amount {
			maxPrice = o.Candidate.Price
		}
		if !seen[o.Candidate.City] {
			seen[o.Candidate.City] = true
			cities = append(cities, o.Candidate.City)
		}
	}
	sort.Strings(cities)

	avg := math.Round(float64(durationSum)/float64(len(opportunities))*100) / 100

	return models.MarketStats{
		AverageDurationMinutes: avg,
		PriceRange:             models.PriceRange{Min: minPrice, Max: maxPrice},
		Cities:                 cities,
	}
}
