package models

import "time"

type DiscoveryMetadata struct {
	TotalOpportunities int      `json:"total_opportunities"`
	TotalFlights       int      `json:"total_flights"`
	SourcesQueried     int      `json:"sources_queried"`
	SourcesSucceeded   int      `json:"sources_succeeded"`
	SourcesFailed      int      `json:"sources_failed"`
	FailedSources      []string `json:"failed_sources,omitempty"`
	SearchTimeMs       int64    `json:"search_time_ms"`
	CacheHit           bool     `json:"cache_hit"`
}

type Categories struct {
	WeatherFriendly []Opportunity `json:"weather_friendly"`
	QuickExplore    []Opportunity `json:"quick_explore"`
	ExtendedStay    []Opportunity `json:"extended_stay"`
}

type PriceRange struct {
	Min Price `json:"min"`
	Max Price `json:"max"`
}

// MarketStats cover the full candidate set, feasible or not, so users
// see the whole market even when most layovers fail feasibility.
type MarketStats struct {
	AverageDurationMinutes float64    `json:"average_duration_minutes"`
	PriceRange             PriceRange `json:"price_range"`
	Cities                 []string   `json:"cities"`
}

type Insights struct {
	Best       *Opportunity `json:"best"`
	Categories Categories   `json:"categories"`
}

type DiscoveryResponse struct {
	Opportunities []Opportunity     `json:"opportunities"`
	Insights      Insights          `json:"insights"`
	Market        MarketStats       `json:"market"`
	Metadata      DiscoveryMetadata `json:"metadata"`
}

type CommissionResult struct {
	ExperiencePrice    Price    `json:"experience_price"`
	CommissionAmount   Price    `json:"commission_amount"`
	PlatformRevenue    Price    `json:"platform_revenue"`
	PartnerPayout      Price    `json:"partner_payout"`
	AppliedStrategies  []string `json:"applied_strategies"`
	BookingProbability float64  `json:"booking_probability"`
}

type BookingSummary struct {
	TotalCommission Price `json:"total_commission"`
	PlatformRevenue Price `json:"platform_revenue"`
	PartnerPayout   Price `json:"partner_payout"`
	Experiences     int   `json:"experiences"`
}

type ExperienceConfirmation struct {
	ExperienceID string           `json:"experience_id"`
	Title        string           `json:"title"`
	VoucherCode  string           `json:"voucher_code"`
	Commission   CommissionResult `json:"commission"`
}

type BookingResponse struct {
	BookingID        string                   `json:"booking_id"`
	ConfirmationCode string                   `json:"confirmation_code"`
	Experiences      []ExperienceConfirmation `json:"experiences"`
	Summary          BookingSummary           `json:"summary"`
	BookedAt         time.Time                `json:"booked_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
