package scoring

import (
	"math"
	"strings"

	"github.com/tripweaver/layover-engine/internal/models"
)

// Config hoists every scoring constant so weighting can be tuned and
// tested without touching logic.
type Config struct {
	BaseScore      float64
	TrendingBoost  float64
	BudgetFitBoost float64
	PreferredBoost float64
	AvoidPenalty   float64

	// Sub-score weights for the overall blend. Must sum to 1.
	FeasibilityWeight float64
	ExperienceWeight  float64
	WeatherWeight     float64

	// FullScoreCityMinutes is the city time that earns a 100
	// feasibility sub-score; shorter stays scale linearly.
	FullScoreCityMinutes int

	// Experience sub-score: PerExperiencePoints per match up to
	// CountPointsCap, plus up to RatingPointsCap from the mean rating.
	PerExperiencePoints float64
	CountPointsCap      float64
	RatingPointsCap     float64
}

func DefaultConfig() Config {
	return Config{
		BaseScore:            50,
		TrendingBoost:        20,
		BudgetFitBoost:       15,
		PreferredBoost:       25,
		AvoidPenalty:         50,
		FeasibilityWeight:    0.40,
		ExperienceWeight:     0.35,
		WeatherWeight:        0.25,
		FullScoreCityMinutes: 360,
		PerExperiencePoints:  25,
		CountPointsCap:       75,
		RatingPointsCap:      25,
	}
}

type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// DestinationScore applies the additive boosts to the base score.
// Boosts stack unclamped; the [0,100] clamp happens exactly once at
// the end, so combined boosts are not truncated midway.
func (s *Scorer) DestinationScore(c models.Candidate, prefs models.Preferences) float64 {
	return clamp(s.cfg.BaseScore + s.BoostDelta(c, prefs))
}

// BoostDelta is the net trending/budget/preference adjustment for a
// candidate. It feeds both the destination score and the overall
// blend, so an avoided city drops in the ranking and a preferred one
// rises.
func (s *Scorer) BoostDelta(c models.Candidate, prefs models.Preferences) float64 {
	var delta float64

	if c.Trending {
		delta += s.cfg.TrendingBoost
	}
	if budgetFits(c.Price, prefs.BudgetTier) {
		delta += s.cfg.BudgetFitBoost
	}
	if containsFold(prefs.PreferredDestinations, c.Code) || containsFold(prefs.PreferredDestinations, c.City) {
		delta += s.cfg.PreferredBoost
	}
	if containsFold(prefs.AvoidDestinations, c.Code) || containsFold(prefs.AvoidDestinations, c.City) {
		delta -= s.cfg.AvoidPenalty
	}

	return delta
}

// FeasibilitySubScore scales available city minutes against the
// full-score reference. Infeasible layovers score 0.
func (s *Scorer) FeasibilitySubScore(feas models.FeasibilityResult) float64 {
	if !feas.CanLeaveAirport {
		return 0
	}
	ratio := float64(feas.AvailableCityMinutes) / float64(s.cfg.FullScoreCityMinutes)
	return round2(clamp(ratio * 100))
}

// ExperienceSubScore blends match count and mean rating.
func (s *Scorer) ExperienceSubScore(matched []models.ExperienceCandidate) float64 {
	if len(matched) == 0 {
		return 0
	}

	countPoints := float64(len(matched)) * s.cfg.PerExperiencePoints
	if countPoints > s.cfg.CountPointsCap {
		countPoints = s.cfg.CountPointsCap
	}

	var ratingSum float64
	for _, e := range matched {
		ratingSum += e.Rating
	}
	meanRating := ratingSum / float64(len(matched))
	ratingPoints := meanRating / 5 * s.cfg.RatingPointsCap

	return round2(clamp(countPoints + ratingPoints))
}

// Overall is the documented weighted blend plus the net preference
// boost: 0.40·feasibility + 0.35·experience + 0.25·weather + boost
// (defaults), clamped once.
func (s *Scorer) Overall(feasibility, experience, weather, boost float64) float64 {
	blend := feasibility*s.cfg.FeasibilityWeight +
		experience*s.cfg.ExperienceWeight +
		weather*s.cfg.WeatherWeight
	return round2(clamp(blend + boost))
}

// Score assembles the full score set for one opportunity.
func (s *Scorer) Score(c models.Candidate, prefs models.Preferences, feas models.FeasibilityResult, matched []models.ExperienceCandidate, weather float64) models.Scores {
	f := s.FeasibilitySubScore(feas)
	e := s.ExperienceSubScore(matched)
	w := round2(clamp(weather))

	return models.Scores{
		Overall:     s.Overall(f, e, w, s.BoostDelta(c, prefs)),
		Feasibility: f,
		Experience:  e,
		Weather:     w,
	}
}

// Less is the canonical opportunity ordering: higher overall first,
// then lower price, then city code. Total and deterministic so sorted
// output is reproducible.
func Less(a, b models.Opportunity) bool {
	if a.Scores.Overall != b.Scores.Overall {
		return a.Scores.Overall > b.Scores.Overall
	}
	if a.Candidate.Price.Amount != b.Candidate.Price.Amount {
		return a.Candidate.Price.Amount < b.Candidate.Price.Amount
	}
	return a.Candidate.Code < b.Candidate.Code
}

// budgetTierCeilings bound the flight price considered a fit for each
// declared tier, in the candidate's own currency units (USD-scale).
var budgetTierCeilings = map[string]float64{
	"budget":   400,
	"standard": 900,
	"premium":  math.MaxFloat64,
}

func budgetFits(price models.Price, tier string) bool {
	ceiling, ok := budgetTierCeilings[strings.ToLower(tier)]
	if !ok {
		return false
	}
	return price.Amount <= ceiling
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
