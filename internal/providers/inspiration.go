package providers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/internal/providers/data"
	"github.com/tripweaver/layover-engine/pkg/currency"
)

type inspirationFeed struct {
	Routes []inspirationRoute `json:"routes"`
}

type inspirationRoute struct {
	Origin         string    `json:"origin"`
	LayoverCode    string    `json:"layover_code"`
	LayoverCity    string    `json:"layover_city"`
	ArrivalTime    string    `json:"arrival_time"`
	LayoverMinutes int       `json:"layover_minutes"`
	Price          feedPrice `json:"price"`
}

type feedPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (p feedPrice) toModel() models.Price {
	return models.Price{
		Amount:    p.Amount,
		Currency:  p.Currency,
		Formatted: currency.Format(p.Amount, p.Currency),
	}
}

// InspirationSource serves the flight-inspiration feed: routings from
// an origin through a candidate layover city, with the layover's
// arrival instant and length.
type InspirationSource struct {
	routes []inspirationRoute
}

func NewInspirationSource() (*InspirationSource, error) {
	var feed inspirationFeed
	if err := json.Unmarshal(data.InspirationData, &feed); err != nil {
		return nil, err
	}
	return &InspirationSource{routes: feed.Routes}, nil
}

func (s *InspirationSource) Name() string {
	return "inspiration"
}

func (s *InspirationSource) FetchCandidates(ctx context.Context, origin string, date time.Time, prefs models.Preferences) ([]models.Candidate, error) {
	if err := simulateLatency(ctx, 40); err != nil {
		return nil, NewProviderError(s.Name(), err)
	}

	var results []models.Candidate
	for _, r := range s.routes {
		if !strings.EqualFold(r.Origin, origin) {
			continue
		}

		arrival, err := anchorTime(date, r.ArrivalTime)
		if err != nil {
			continue
		}

		results = append(results, models.Candidate{
			Code:      strings.ToUpper(r.LayoverCode),
			City:      r.LayoverCity,
			Trending:  false,
			Price:     r.Price.toModel(),
			Arrival:   arrival,
			Departure: arrival.Add(time.Duration(r.LayoverMinutes) * time.Minute),
			Source:    s.Name(),
		})
	}

	return results, nil
}
