package models

import (
	"fmt"
	"time"
)

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// Candidate is one potential layover destination produced by a source
// adapter. Score starts at the scorer's base value and is finalized
// during scoring; candidates are not mutated after that point.
type Candidate struct {
	Code      string    `json:"code"`
	City      string    `json:"city"`
	Score     float64   `json:"score"`
	Trending  bool      `json:"trending"`
	Price     Price     `json:"price"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
	Source    string    `json:"source"`
}

type TimingWindow struct {
	Arrival         time.Time `json:"arrival"`
	Departure       time.Time `json:"departure"`
	DurationMinutes int       `json:"duration_minutes"`
}

// NewTimingWindow derives a window from the layover's arrival and
// departure instants. Departure before arrival is a data error.
func NewTimingWindow(arrival, departure time.Time) (TimingWindow, error) {
	if departure.Before(arrival) {
		return TimingWindow{}, fmt.Errorf("departure %s before arrival %s", departure.Format(time.RFC3339), arrival.Format(time.RFC3339))
	}
	return TimingWindow{
		Arrival:         arrival,
		Departure:       departure,
		DurationMinutes: int(departure.Sub(arrival).Minutes()),
	}, nil
}

type TransitMode string

const (
	TransitRail    TransitMode = "rail"
	TransitTaxi    TransitMode = "taxi"
	TransitShuttle TransitMode = "shuttle"
	TransitNone    TransitMode = ""
)

type FeasibilityResult struct {
	CanLeaveAirport      bool        `json:"can_leave_airport"`
	AvailableCityMinutes int         `json:"available_city_minutes"`
	TransitMode          TransitMode `json:"transit_mode,omitempty"`
}

// Scores are all in [0,100]. Overall is a fixed weighted blend of the
// sub-scores plus the net preference boost; see the scoring package
// for the weights.
type Scores struct {
	Overall     float64 `json:"overall"`
	Feasibility float64 `json:"feasibility"`
	Experience  float64 `json:"experience"`
	Weather     float64 `json:"weather"`
}

type ExperienceCandidate struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           Price     `json:"price"`
	Rating          float64   `json:"rating"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
}

type BundlePricing struct {
	TotalPrice        Price   `json:"total_price"`
	SavingsAmount     Price   `json:"savings_amount"`
	SavingsPercentage float64 `json:"savings_percentage"`
}

// Opportunity is one scored, feasibility-evaluated layover destination.
// Built per discovery request and never persisted by the engine.
type Opportunity struct {
	Candidate   Candidate             `json:"candidate"`
	Window      TimingWindow          `json:"window"`
	Feasibility FeasibilityResult     `json:"feasibility"`
	Scores      Scores                `json:"scores"`
	Experiences []ExperienceCandidate `json:"experiences"`
	Bundle      *BundlePricing        `json:"bundle,omitempty"`
}

// Feasible reports whether the traveler can leave the airport at this
// layover. Infeasible opportunities stay in results so callers can see
// why a city was excluded.
func (o *Opportunity) Feasible() bool {
	return o.Feasibility.CanLeaveAirport
}
