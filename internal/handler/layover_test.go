package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/layover-engine/internal/commission"
	"github.com/tripweaver/layover-engine/internal/engine"
	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/internal/providers"
	"github.com/tripweaver/layover-engine/internal/scoring"
	"github.com/tripweaver/layover-engine/internal/transit"
)

var arrival = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

type fixedSource struct{}

func (fixedSource) Name() string { return "fixed" }

func (fixedSource) FetchCandidates(ctx context.Context, origin string, date time.Time, prefs models.Preferences) ([]models.Candidate, error) {
	return []models.Candidate{{
		Code:      "SIN",
		City:      "Singapore",
		Trending:  true,
		Price:     models.Price{Amount: 780, Currency: "USD"},
		Arrival:   arrival,
		Departure: arrival.Add(480 * time.Minute),
		Source:    "fixed",
	}}, nil
}

type fixedExperiences struct {
	unavailable map[string]bool
}

func (fixedExperiences) Name() string { return "fixed-experiences" }

func (fixedExperiences) FetchExperiences(ctx context.Context, cityCode string, date time.Time) ([]models.ExperienceCandidate, error) {
	start := arrival.Add(time.Hour)
	return []models.ExperienceCandidate{{
		ID:              "sin-walk",
		Title:           "City Walk",
		DurationMinutes: 180,
		Price:           models.Price{Amount: 50, Currency: "USD"},
		Rating:          4.6,
		Start:           start,
		End:             start.Add(180 * time.Minute),
	}}, nil
}

func (f fixedExperiences) CheckAvailability(ctx context.Context, experienceID string, date time.Time) (bool, error) {
	return !f.unavailable[experienceID] && experienceID == "sin-walk", nil
}

type fixedWeather struct{}

func (fixedWeather) Suitability(ctx context.Context, cityCode string, date time.Time) (float64, error) {
	return 72, nil
}

func newTestHandler(unavailable map[string]bool) *LayoverHandler {
	fetcher := providers.NewFetcher([]providers.Source{fixedSource{}}, providers.FetcherConfig{
		Timeout:     2 * time.Second,
		MaxRetries:  0,
		RetryDelays: []time.Duration{time.Millisecond},
	})

	eng := engine.New(engine.Config{
		Fetcher:     fetcher,
		Experiences: fixedExperiences{unavailable: unavailable},
		Weather:     fixedWeather{},
		Transit: func(code string) transit.Estimate {
			return transit.Estimate{OneWayMinutes: 30, Modes: []models.TransitMode{models.TransitRail}}
		},
		Scoring:    scoring.DefaultConfig(),
		Commission: commission.DefaultConfig(),
	})

	return NewLayoverHandler(eng)
}

func doRequest(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestDiscover_OK(t *testing.T) {
	h := newTestHandler(nil)

	rec := doRequest(t, h.Discover, `{"origin":"JFK","departure_date":"2026-09-14","passengers":{"adults":1},"preferences":{}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DiscoveryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Opportunities, 1)
	assert.Equal(t, "SIN", resp.Opportunities[0].Candidate.Code)
	require.NotNil(t, resp.Insights.Best)
}

func TestDiscover_ValidationError(t *testing.T) {
	h := newTestHandler(nil)

	rec := doRequest(t, h.Discover, `{"departure_date":"2026-09-14"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)
}

func bookingBody() string {
	return `{
		"flight_offer": {
			"id": "offer-1",
			"layover_code": "SIN",
			"layover_city": "Singapore",
			"arrival": "2026-09-14T10:00:00Z",
			"departure": "2026-09-14T18:00:00Z",
			"price": {"amount": 780, "currency": "USD"}
		},
		"passengers": {"adults": 1},
		"experience_selections": [{"experience_id": "sin-walk", "date": "2026-09-14", "travelers": 1}],
		"payment_method": "card-token"
	}`
}

func TestBook_Created(t *testing.T) {
	h := newTestHandler(nil)

	rec := doRequest(t, h.Book, bookingBody())

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.BookingID)
	assert.InDelta(t, 10.0, resp.Summary.TotalCommission.Amount, 0.001)
}

func TestBook_UnavailableMapsToConflict(t *testing.T) {
	h := newTestHandler(map[string]bool{"sin-walk": true})

	rec := doRequest(t, h.Book, bookingBody())

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "nothing_bookable", resp.Error)
	assert.Contains(t, resp.Message, "sin-walk")
}
