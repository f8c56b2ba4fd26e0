package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripweaver/layover-engine/internal/cache"
	"github.com/tripweaver/layover-engine/internal/commission"
	"github.com/tripweaver/layover-engine/internal/feasibility"
	"github.com/tripweaver/layover-engine/internal/insights"
	"github.com/tripweaver/layover-engine/internal/matching"
	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/internal/providers"
	"github.com/tripweaver/layover-engine/internal/scoring"
	"github.com/tripweaver/layover-engine/internal/transit"
)

// TransitLookup resolves the transit estimate for an airport. Injected
// so tests can pin estimates.
type TransitLookup func(code string) transit.Estimate

type Config struct {
	Fetcher     *providers.Fetcher
	Experiences providers.ExperienceSource
	Weather     providers.WeatherSource
	Transit     TransitLookup
	Scoring     scoring.Config
	Commission  commission.Config
	Cache       cache.Cache
	Now         func() time.Time

	// MaxConcurrency bounds per-candidate evaluation so scoring
	// cannot overwhelm the experience and weather collaborators.
	MaxConcurrency int
}

// Engine sequences discovery and booking. All collaborators are
// injected; there is no shared singleton state.
type Engine struct {
	fetcher     *providers.Fetcher
	experiences providers.ExperienceSource
	weather     providers.WeatherSource
	transit     TransitLookup
	scorer      *scoring.Scorer
	commissions *commission.Calculator
	cache       cache.Cache
	now         func() time.Time
	concurrency int
}

func New(cfg Config) *Engine {
	if cfg.Transit == nil {
		cfg.Transit = transit.Lookup
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNoOpCache()
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 8
	}

	return &Engine{
		fetcher:     cfg.Fetcher,
		experiences: cfg.Experiences,
		weather:     cfg.Weather,
		transit:     cfg.Transit,
		scorer:      scoring.NewScorer(cfg.Scoring),
		commissions: commission.NewCalculator(cfg.Commission),
		cache:       cfg.Cache,
		now:         cfg.Now,
		concurrency: cfg.MaxConcurrency,
	}
}

// Discover runs the full pipeline: fan out to sources, merge, evaluate
// feasibility, match experiences, score, rank, aggregate. Source failures
// degrade the result and are named in the metadata; they never fail
// the request.
func (e *Engine) Discover(ctx context.Context, req models.DiscoveryRequest) (*models.DiscoveryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := e.now()
	date, _ := time.Parse("2006-01-02", req.DepartureDate)

	meta := models.DiscoveryMetadata{}

	// TotalFlights counts the merged candidate set on both paths; the
	// source counters cover only fan-outs made for this request, so
	// they stay zero on a cache hit.
	candidates, hit := e.cache.Get(ctx, req)
	if hit {
		meta.CacheHit = true
		meta.TotalFlights = len(candidates)
	} else {
		fetched := e.fetcher.Fetch(ctx, req.Origin, date, req.Preferences)
		candidates = fetched.Candidates
		meta.TotalFlights = len(candidates)
		meta.SourcesQueried = fetched.SourcesQueried
		meta.SourcesSucceeded = fetched.SourcesSucceeded
		meta.SourcesFailed = fetched.SourcesFailed
		meta.FailedSources = fetched.FailedSources

		if err := e.cache.Set(ctx, req, candidates); err != nil {
			log.Printf("Cache write failed: %v", err)
		}
	}

	opportunities := e.evaluateAll(ctx, candidates, req.Preferences)
	sort.SliceStable(opportunities, func(i, j int) bool {
		return scoring.Less(opportunities[i], opportunities[j])
	})

	agg := insights.Aggregate(opportunities)
	market := insights.MarketStats(opportunities)

	meta.TotalOpportunities = len(opportunities)
	meta.SearchTimeMs = e.now().Sub(start).Milliseconds()

	return &models.DiscoveryResponse{
		Opportunities: opportunities,
		Insights:      agg,
		Market:        market,
		Metadata:      meta,
	}, nil
}

// evaluateAll scores candidates concurrently under the semaphore. Each
// candidate is independent; results land at the candidate's index so
// output order matches merge order.
func (e *Engine) evaluateAll(ctx context.Context, candidates []models.Candidate, prefs models.Preferences) []models.Opportunity {
	type slot struct {
		opp models.Opportunity
		ok  bool
	}

	slots := make([]slot, len(candidates))
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, c := range candidates {
		if c.Departure.Sub(c.Arrival) > time.Duration(prefs.MaxLayoverMinutes)*time.Minute {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c models.Candidate) {
			defer wg.Done()
			defer func() { <-sem }()

			opp, err := e.evaluate(ctx, c, prefs)
			if err != nil {
				log.Printf("Candidate %s dropped: %v", c.Code, err)
				return
			}
			slots[i] = slot{opp: opp, ok: true}
		}(i, c)
	}
	wg.Wait()

	result := make([]models.Opportunity, 0, len(candidates))
	for _, s := range slots {
		if s.ok {
			result = append(result, s.opp)
		}
	}
	return result
}

func (e *Engine) evaluate(ctx context.Context, c models.Candidate, prefs models.Preferences) (models.Opportunity, error) {
	window, err := models.NewTimingWindow(c.Arrival, c.Departure)
	if err != nil {
		return models.Opportunity{}, err
	}

	feas := feasibility.Evaluate(window, e.transit(c.Code))

	matched := []models.ExperienceCandidate{}
	if feas.CanLeaveAirport {
		available, err := e.experiences.FetchExperiences(ctx, c.Code, window.Arrival)
		if err != nil {
			// Degrade to no experiences rather than dropping the city.
			log.Printf("Experience lookup for %s failed: %v", c.Code, err)
			available = nil
		}
		matched = matching.Match(available, window, feas)
	}

	var bundle *models.BundlePricing
	if len(matched) > 0 {
		bundle = matching.Bundle(c.Price, matched[0])
	}

	weather, err := e.weather.Suitability(ctx, c.Code, window.Arrival)
	if err != nil {
		log.Printf("Weather lookup for %s failed: %v", c.Code, err)
		weather = providers.DefaultWeatherScore
	}

	c.Score = e.scorer.DestinationScore(c, prefs)

	return models.Opportunity{
		Candidate:   c,
		Window:      window,
		Feasibility: feas,
		Scores:      e.scorer.Score(c, prefs, feas, matched, weather),
		Experiences: matched,
		Bundle:      bundle,
	}, nil
}

// Book re-validates feasibility and every selected experience before
// any money moves. One failed selection rejects the whole booking; the
// caller is told which selections failed.
func (e *Engine) Book(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	window, err := models.NewTimingWindow(req.Offer.Arrival, req.Offer.Departure)
	if err != nil {
		return nil, models.ValidationError("flight_offer window is invalid: " + err.Error())
	}

	feas := feasibility.Evaluate(window, e.transit(req.Offer.LayoverCode))
	if !feas.CanLeaveAirport {
		return nil, models.ErrLayoverInfeasible
	}

	available, err := e.experiences.FetchExperiences(ctx, req.Offer.LayoverCode, window.Arrival)
	if err != nil {
		return nil, fmt.Errorf("experience lookup failed: %w", err)
	}
	matched := matching.Match(available, window, feas)

	byID := make(map[string]models.ExperienceCandidate, len(matched))
	for _, m := range matched {
		byID[m.ID] = m
	}

	failed := e.recheckSelections(ctx, req.Selections, byID, window.Arrival)
	if len(failed) > 0 {
		return nil, &models.UnavailableSelectionError{
			ExperienceIDs: failed,
			Selected:      len(req.Selections),
		}
	}

	// Summarize sums selections under one currency, so a mixed basket
	// must be rejected before any commission math runs.
	currency := ""
	for _, sel := range req.Selections {
		c := byID[sel.ExperienceID].Price.Currency
		if currency == "" {
			currency = c
		} else if c != currency {
			return nil, models.ErrMixedCurrencySelections
		}
	}

	confirmations := make([]models.ExperienceConfirmation, 0, len(req.Selections))
	results := make([]models.CommissionResult, 0, len(req.Selections))
	for _, sel := range req.Selections {
		exp := byID[sel.ExperienceID]
		result := e.commissions.Calculate(exp.Price, commission.StrategyContext{
			LoyaltyTier: req.LoyaltyTier,
			PromoActive: req.PromoCode != "",
			Rating:      exp.Rating,
		})
		results = append(results, result)
		confirmations = append(confirmations, models.ExperienceConfirmation{
			ExperienceID: exp.ID,
			Title:        exp.Title,
			VoucherCode:  voucherCode(),
			Commission:   result,
		})
	}

	return &models.BookingResponse{
		BookingID:        uuid.NewString(),
		ConfirmationCode: confirmationCode(),
		Experiences:      confirmations,
		Summary:          commission.Summarize(results),
		BookedAt:         e.now(),
	}, nil
}

// recheckSelections runs per-experience availability checks in
// parallel and returns the ids that failed timing or availability.
func (e *Engine) recheckSelections(ctx context.Context, selections []models.ExperienceSelection, eligible map[string]models.ExperienceCandidate, fallbackDate time.Time) []string {
	failures := make([]bool, len(selections))
	var wg sync.WaitGroup

	for i, sel := range selections {
		if _, ok := eligible[sel.ExperienceID]; !ok {
			failures[i] = true
			continue
		}

		wg.Add(1)
		go func(i int, sel models.ExperienceSelection) {
			defer wg.Done()

			date := fallbackDate
			if parsed, err := time.Parse("2006-01-02", sel.Date); err == nil {
				date = parsed
			}

			ok, err := e.experiences.CheckAvailability(ctx, sel.ExperienceID, date)
			if err != nil {
				log.Printf("Availability check for %s failed: %v", sel.ExperienceID, err)
				failures[i] = true
				return
			}
			failures[i] = !ok
		}(i, sel)
	}
	wg.Wait()

	var failed []string
	for i, bad := range failures {
		if bad {
			failed = append(failed, selections[i].ExperienceID)
		}
	}
	return failed
}

func confirmationCode() string {
	return "LAY-" + strings.ToUpper(uuid.NewString()[:8])
}

func voucherCode() string {
	return "VCH-" + strings.ToUpper(uuid.NewString()[:8])
}
