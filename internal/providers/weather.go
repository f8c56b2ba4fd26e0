package providers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tripweaver/layover-engine/internal/providers/data"
)

type weatherTable struct {
	Cities []weatherCity `json:"cities"`
}

type weatherCity struct {
	Code    string      `json:"code"`
	Monthly [12]float64 `json:"monthly"`
}

// DefaultWeatherScore applies to cities missing from the table.
const DefaultWeatherScore = 60

// StaticWeather scores weather suitability from an embedded monthly
// climate table. Deterministic per city and month.
type StaticWeather struct {
	byCode map[string][12]float64
}

func NewStaticWeather() (*StaticWeather, error) {
	var table weatherTable
	if err := json.Unmarshal(data.WeatherData, &table); err != nil {
		return nil, err
	}

	byCode := make(map[string][12]float64, len(table.Cities))
	for _, c := range table.Cities {
		byCode[strings.ToUpper(c.Code)] = c.Monthly
	}
	return &StaticWeather{byCode: byCode}, nil
}

func (w *StaticWeather) Suitability(ctx context.Context, cityCode string, date time.Time) (float64, error) {
	monthly, ok := w.byCode[strings.ToUpper(cityCode)]
	if !ok {
		return DefaultWeatherScore, nil
	}
	return monthly[int(date.Month())-1], nil
}
