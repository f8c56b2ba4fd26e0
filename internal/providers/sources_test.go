package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/layover-engine/internal/models"
)

var travelDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func TestInspirationSource_FiltersByOrigin(t *testing.T) {
	src, err := NewInspirationSource()
	require.NoError(t, err)

	candidates, err := src.FetchCandidates(context.Background(), "JFK", travelDate, models.Preferences{})
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		assert.Equal(t, "inspiration", c.Source)
		assert.False(t, c.Trending)
	}

	other, err := src.FetchCandidates(context.Background(), "cgk", travelDate, models.Preferences{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestInspirationSource_AnchorsWindowOnTravelDate(t *testing.T) {
	src, err := NewInspirationSource()
	require.NoError(t, err)

	candidates, err := src.FetchCandidates(context.Background(), "JFK", travelDate, models.Preferences{})
	require.NoError(t, err)

	var sin *models.Candidate
	for i := range candidates {
		if candidates[i].Code == "SIN" {
			sin = &candidates[i]
		}
	}
	require.NotNil(t, sin)

	assert.Equal(t, time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC), sin.Arrival)
	assert.Equal(t, 480*time.Minute, sin.Departure.Sub(sin.Arrival))
}

func TestTrendingSource_FlagsHighVolumeDestinations(t *testing.T) {
	src, err := NewTrendingSource()
	require.NoError(t, err)

	candidates, err := src.FetchCandidates(context.Background(), "JFK", travelDate, models.Preferences{})
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	byCode := make(map[string]models.Candidate)
	for _, c := range candidates {
		byCode[c.Code] = c
	}

	assert.True(t, byCode["IST"].Trending)
	assert.True(t, byCode["SIN"].Trending)
	assert.False(t, byCode["CPH"].Trending, "below the search-volume floor")
}

func TestExperienceFeed_FetchExperiencesAnchored(t *testing.T) {
	feed, err := NewExperienceFeed()
	require.NoError(t, err)

	experiences, err := feed.FetchExperiences(context.Background(), "sin", travelDate)
	require.NoError(t, err)
	require.Len(t, experiences, 3)

	first := experiences[0]
	assert.Equal(t, "sin-gardens-001", first.ID)
	assert.Equal(t, time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC), first.Start)
	assert.Equal(t, time.Date(2026, 9, 14, 13, 30, 0, 0, time.UTC), first.End)
}

func TestExperienceFeed_UnknownCityIsEmptyNotError(t *testing.T) {
	feed, err := NewExperienceFeed()
	require.NoError(t, err)

	experiences, err := feed.FetchExperiences(context.Background(), "XXX", travelDate)
	require.NoError(t, err)
	assert.Empty(t, experiences)
}

func TestExperienceFeed_Availability(t *testing.T) {
	feed, err := NewExperienceFeed()
	require.NoError(t, err)

	ok, err := feed.CheckAvailability(context.Background(), "sin-gardens-001", travelDate)
	require.NoError(t, err)
	assert.True(t, ok)

	feed.MarkUnavailable("sin-gardens-001")
	ok, err = feed.CheckAvailability(context.Background(), "sin-gardens-001", travelDate)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = feed.CheckAvailability(context.Background(), "no-such-experience", travelDate)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaticWeather_DeterministicByCityAndMonth(t *testing.T) {
	weather, err := NewStaticWeather()
	require.NoError(t, err)

	september := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	first, err := weather.Suitability(context.Background(), "SIN", september)
	require.NoError(t, err)
	again, err := weather.Suitability(context.Background(), "sin", september)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	unknown, err := weather.Suitability(context.Background(), "XXX", september)
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultWeatherScore), unknown)
}

func TestFetcher_FailedSourceDegradesNotFails(t *testing.T) {
	good, err := NewTrendingSource()
	require.NoError(t, err)

	fetcher := NewFetcher([]Source{failingSource{}, good}, FetcherConfig{
		Timeout:     2 * time.Second,
		MaxRetries:  0,
		RetryDelays: []time.Duration{time.Millisecond},
	})

	result := fetcher.Fetch(context.Background(), "JFK", travelDate, models.Preferences{})

	assert.Equal(t, 2, result.SourcesQueried)
	assert.Equal(t, 1, result.SourcesSucceeded)
	assert.Equal(t, 1, result.SourcesFailed)
	assert.Equal(t, []string{"broken"}, result.FailedSources)
	assert.NotEmpty(t, result.Candidates)
}

func TestFetcher_MergesInConfiguredSourceOrder(t *testing.T) {
	inspiration, err := NewInspirationSource()
	require.NoError(t, err)
	trending, err := NewTrendingSource()
	require.NoError(t, err)

	fetcher := NewFetcher([]Source{inspiration, trending}, FetcherConfig{
		Timeout:     2 * time.Second,
		MaxRetries:  0,
		RetryDelays: []time.Duration{time.Millisecond},
	})

	result := fetcher.Fetch(context.Background(), "JFK", travelDate, models.Preferences{})

	byCode := make(map[string]models.Candidate)
	for _, c := range result.Candidates {
		byCode[c.Code] = c
	}

	// SIN appears in both feeds: inspiration's price wins, and the
	// trending flag is OR-ed in.
	sin := byCode["SIN"]
	assert.Equal(t, "inspiration", sin.Source)
	assert.Equal(t, 780.0, sin.Price.Amount)
	assert.True(t, sin.Trending)
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }

func (failingSource) FetchCandidates(ctx context.Context, origin string, date time.Time, prefs models.Preferences) ([]models.Candidate, error) {
	return nil, NewProviderError("broken", context.DeadlineExceeded)
}
