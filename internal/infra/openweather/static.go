package openweather

import (
	"context"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

// Static is a deterministic provider used when no API key is configured.
// The guide's planning examples were written against exactly these values.
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

var _ ports.WeatherProvider = (*Static)(nil)

func (s *Static) Current(_ context.Context, city string) (domain.Observation, error) {
	return domain.Observation{
		City:        city,
		Description: "partly cloudy",
		TempC:       22,
		FeelsLikeC:  22,
		Humidity:    65,
		WindKMH:     10,
		PressureHPA: 1013,
	}, nil
}

func (s *Static) Forecast(_ context.Context, city string, days int) (domain.Forecast, error) {
	all := []domain.ForecastDay{
		{Day: "today", TempC: 22, Condition: "partly cloudy"},
		{Day: "tomorrow", TempC: 25, Condition: "sunny"},
		{Day: "day_after", TempC: 20, Condition: "rainy"},
	}
	if days < 0 {
		days = 0
	}
	if days < len(all) {
		all = all[:days]
	}
	return domain.Forecast{City: city, Days: all}, nil
}
