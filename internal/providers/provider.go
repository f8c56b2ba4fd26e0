package providers

import (
	"context"
	"time"

	"github.com/tripweaver/layover-engine/internal/models"
)

// Source feeds candidate layover destinations for one origin. A source
// failure must never fail the discovery call; the fetcher treats the
// failing source as empty and reports it.
type Source interface {
	Name() string
	FetchCandidates(ctx context.Context, origin string, date time.Time, prefs models.Preferences) ([]models.Candidate, error)
}

// ExperienceSource lists bookable experiences for a city and re-checks
// a specific experience's availability at booking time.
type ExperienceSource interface {
	Name() string
	FetchExperiences(ctx context.Context, cityCode string, date time.Time) ([]models.ExperienceCandidate, error)
	CheckAvailability(ctx context.Context, experienceID string, date time.Time) (bool, error)
}

// WeatherSource returns a 0-100 suitability score for a city at a
// date. Deterministic given identical inputs.
type WeatherSource interface {
	Suitability(ctx context.Context, cityCode string, date time.Time) (float64, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
