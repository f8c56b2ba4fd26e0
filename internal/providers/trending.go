package providers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/internal/providers/data"
)

type trendingFeed struct {
	Destinations []trendingDestination `json:"destinations"`
}

type trendingDestination struct {
	Code           string    `json:"code"`
	City           string    `json:"city"`
	Searches7d     int       `json:"searches_7d"`
	ArrivalTime    string    `json:"arrival_time"`
	LayoverMinutes int       `json:"layover_minutes"`
	Price          feedPrice `json:"price"`
}

// trendingFloor is the weekly search volume below which a destination
// is listed but not flagged trending.
const trendingFloor = 10000

// TrendingSource serves the trending-destination feed. The feed is not
// origin-specific; its routings are representative, and the merge step
// lets origin-specific prices win.
type TrendingSource struct {
	destinations []trendingDestination
}

func NewTrendingSource() (*TrendingSource, error) {
	var feed trendingFeed
	if err := json.Unmarshal(data.TrendingData, &feed); err != nil {
		return nil, err
	}
	return &TrendingSource{destinations: feed.Destinations}, nil
}

func (s *TrendingSource) Name() string {
	return "trending"
}

func (s *TrendingSource) FetchCandidates(ctx context.Context, origin string, date time.Time, prefs models.Preferences) ([]models.Candidate, error) {
	if err := simulateLatency(ctx, 30); err != nil {
		return nil, NewProviderError(s.Name(), err)
	}

	var results []models.Candidate
	for _, d := range s.destinations {
		arrival, err := anchorTime(date, d.ArrivalTime)
		if err != nil {
			continue
		}

		results = append(results, models.Candidate{
			Code:      strings.ToUpper(d.Code),
			City:      d.City,
			Trending:  d.Searches7d >= trendingFloor,
			Price:     d.Price.toModel(),
			Arrival:   arrival,
			Departure: arrival.Add(time.Duration(d.LayoverMinutes) * time.Minute),
			Source:    s.Name(),
		})
	}

	return results, nil
}
