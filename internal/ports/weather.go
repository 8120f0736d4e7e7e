package ports

import (
	"context"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

// WeatherProvider reports conditions for a city.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (domain.Observation, error)
	Forecast(ctx context.Context, city string, days int) (domain.Forecast, error)
}
