package models

import "time"

type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}

type Preferences struct {
	MinLayoverMinutes     int      `json:"min_layover_duration"`
	MaxLayoverMinutes     int      `json:"max_layover_duration"`
	PreferredActivities   []string `json:"preferred_activities,omitempty"`
	PhysicalDemand        string   `json:"physical_demand,omitempty"`
	BudgetTier            string   `json:"budget_tier,omitempty"`
	PreferredDestinations []string `json:"preferred_destinations,omitempty"`
	AvoidDestinations     []string `json:"avoid_destinations,omitempty"`
}

type DiscoveryRequest struct {
	Origin        string      `json:"origin"`
	Destination   string      `json:"destination,omitempty"`
	DepartureDate string      `json:"departure_date"`
	ReturnDate    *string     `json:"return_date,omitempty"`
	Passengers    Passengers  `json:"passengers"`
	Preferences   Preferences `json:"preferences"`
}

func (r *DiscoveryRequest) Validate() error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if _, err := time.Parse("2006-01-02", r.DepartureDate); err != nil {
		return ErrInvalidDepartureDate
	}
	if r.Passengers.Total() <= 0 {
		r.Passengers.Adults = 1
	}
	if r.Preferences.MinLayoverMinutes <= 0 {
		r.Preferences.MinLayoverMinutes = 120
	}
	if r.Preferences.MaxLayoverMinutes <= 0 {
		r.Preferences.MaxLayoverMinutes = 24 * 60
	}
	if r.Preferences.MaxLayoverMinutes < r.Preferences.MinLayoverMinutes {
		return ErrInvalidLayoverRange
	}
	return nil
}

// FlightOffer is the flight the traveler selected at discovery time,
// carried back verbatim on booking so feasibility can be re-derived.
type FlightOffer struct {
	ID          string    `json:"id"`
	LayoverCode string    `json:"layover_code"`
	LayoverCity string    `json:"layover_city"`
	Arrival     time.Time `json:"arrival"`
	Departure   time.Time `json:"departure"`
	Price       Price     `json:"price"`
}

type ExperienceSelection struct {
	ExperienceID string `json:"experience_id"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
	Travelers    int    `json:"travelers"`
}

type BookingRequest struct {
	Offer         FlightOffer           `json:"flight_offer"`
	Passengers    Passengers            `json:"passengers"`
	Selections    []ExperienceSelection `json:"experience_selections"`
	Preferences   Preferences           `json:"preferences"`
	PaymentMethod string                `json:"payment_method"`
	LoyaltyTier   string                `json:"loyalty_tier,omitempty"`
	PromoCode     string                `json:"promo_code,omitempty"`
}

func (r *BookingRequest) Validate() error {
	if r.Offer.ID == "" {
		return ErrMissingFlightOffer
	}
	if r.Offer.LayoverCode == "" {
		return ErrMissingLayoverCode
	}
	if len(r.Selections) == 0 {
		return ErrMissingSelections
	}
	if r.PaymentMethod == "" {
		return ErrMissingPaymentMethod
	}
	for i := range r.Selections {
		if r.Selections[i].ExperienceID == "" {
			return ErrMissingExperienceID
		}
		if r.Selections[i].Travelers <= 0 {
			r.Selections[i].Travelers = 1
		}
	}
	if r.Passengers.Total() <= 0 {
		r.Passengers.Adults = 1
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDepartureDate ValidationError = "departure_date is required"
	ErrInvalidDepartureDate ValidationError = "departure_date must be YYYY-MM-DD"
	ErrInvalidLayoverRange  ValidationError = "max_layover_duration is below min_layover_duration"
	ErrMissingFlightOffer   ValidationError = "flight_offer.id is required"
	ErrMissingLayoverCode   ValidationError = "flight_offer.layover_code is required"
	ErrMissingSelections    ValidationError = "at least one experience selection is required"
	ErrMissingPaymentMethod ValidationError = "payment_method is required"
	ErrMissingExperienceID  ValidationError = "experience_id is required on every selection"

	ErrMixedCurrencySelections ValidationError = "selected experiences must share a single currency"
)
