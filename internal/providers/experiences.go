package providers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/internal/providers/data"
)

type experienceFeedPayload struct {
	Cities []experienceCity `json:"cities"`
}

type experienceCity struct {
	Code           string           `json:"code"`
	City           string           `json:"city"`
	ArrivalTime    string           `json:"arrival_time"`
	LayoverMinutes int              `json:"layover_minutes"`
	Price          feedPrice        `json:"price"`
	Experiences    []feedExperience `json:"experiences"`
}

type feedExperience struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           feedPrice `json:"price"`
	Rating          float64   `json:"rating"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
}

// ExperienceFeed serves the experience-availability feed. It is both a
// candidate source (cities with bookable inventory) and the
// experience/availability collaborator for matching and booking.
type ExperienceFeed struct {
	cities map[string]experienceCity
	order  []string // feed order, keeps candidate output deterministic

	// unavailable lets tests and ops drills mark inventory that
	// disappeared between discovery and booking.
	unavailable map[string]bool
}

func NewExperienceFeed() (*ExperienceFeed, error) {
	var payload experienceFeedPayload
	if err := json.Unmarshal(data.ExperienceData, &payload); err != nil {
		return nil, err
	}

	cities := make(map[string]experienceCity, len(payload.Cities))
	order := make([]string, 0, len(payload.Cities))
	for _, c := range payload.Cities {
		code := strings.ToUpper(c.Code)
		cities[code] = c
		order = append(order, code)
	}

	return &ExperienceFeed{
		cities:      cities,
		order:       order,
		unavailable: make(map[string]bool),
	}, nil
}

func (s *ExperienceFeed) Name() string {
	return "experiences"
}

func (s *ExperienceFeed) FetchCandidates(ctx context.Context, origin string, date time.Time, prefs models.Preferences) ([]models.Candidate, error) {
	if err := simulateLatency(ctx, 50); err != nil {
		return nil, NewProviderError(s.Name(), err)
	}

	var results []models.Candidate
	for _, code := range s.order {
		c := s.cities[code]
		arrival, err := anchorTime(date, c.ArrivalTime)
		if err != nil {
			continue
		}

		results = append(results, models.Candidate{
			Code:      code,
			City:      c.City,
			Trending:  false,
			Price:     c.Price.toModel(),
			Arrival:   arrival,
			Departure: arrival.Add(time.Duration(c.LayoverMinutes) * time.Minute),
			Source:    s.Name(),
		})
	}

	return results, nil
}

func (s *ExperienceFeed) FetchExperiences(ctx context.Context, cityCode string, date time.Time) ([]models.ExperienceCandidate, error) {
	if err := simulateLatency(ctx, 40); err != nil {
		return nil, NewProviderError(s.Name(), err)
	}

	city, ok := s.cities[strings.ToUpper(cityCode)]
	if !ok {
		return []models.ExperienceCandidate{}, nil
	}

	results := make([]models.ExperienceCandidate, 0, len(city.Experiences))
	for _, e := range city.Experiences {
		start, err := anchorTime(date, e.StartTime)
		if err != nil {
			continue
		}
		end, err := anchorTime(date, e.EndTime)
		if err != nil {
			continue
		}

		results = append(results, models.ExperienceCandidate{
			ID:              e.ID,
			Title:           e.Title,
			DurationMinutes: e.DurationMinutes,
			Price:           e.Price.toModel(),
			Rating:          e.Rating,
			Start:           start,
			End:             end,
		})
	}

	return results, nil
}

// CheckAvailability re-checks one experience at booking time.
func (s *ExperienceFeed) CheckAvailability(ctx context.Context, experienceID string, date time.Time) (bool, error) {
	if err := simulateLatency(ctx, 20); err != nil {
		return false, NewProviderError(s.Name(), err)
	}

	if s.unavailable[experienceID] {
		return false, nil
	}

	for _, c := range s.cities {
		for _, e := range c.Experiences {
			if e.ID == experienceID {
				return true, nil
			}
		}
	}
	return false, nil
}

// MarkUnavailable removes an experience from sale until restored.
func (s *ExperienceFeed) MarkUnavailable(experienceID string) {
	s.unavailable[experienceID] = true
}
