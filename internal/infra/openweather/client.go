// Package openweather fetches conditions from the OpenWeatherMap API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

const (
	defaultBaseURL      = "http://api.openweathermap.org/data/2.5"
	defaultMaxBodyBytes = 256 * 1024 // 256KB
)

type Client struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	maxBodyBytes int64
}

type Option func(*Client)

// WithBaseURL overrides the API host (useful for tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) { c.maxBodyBytes = n }
}

func New(apiKey string, client *http.Client, opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		apiKey:       apiKey,
		client:       client,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.WeatherProvider = (*Client)(nil)

type currentDTO struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current fetches current conditions (metric units).
func (c *Client) Current(ctx context.Context, city string) (domain.Observation, error) {
	var dto currentDTO
	if err := c.get(ctx, "/weather", city, &dto); err != nil {
		return domain.Observation{}, err
	}

	desc := ""
	if len(dto.Weather) > 0 {
		desc = dto.Weather[0].Description
	}

	name := dto.Name
	if name == "" {
		name = city
	}

	return domain.Observation{
		City:        name,
		Description: desc,
		TempC:       dto.Main.Temp,
		FeelsLikeC:  dto.Main.FeelsLike,
		Humidity:    dto.Main.Humidity,
		// API reports m/s for metric units.
		WindKMH:     dto.Wind.Speed * 3.6,
		PressureHPA: dto.Main.Pressure,
	}, nil
}

type forecastDTO struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast fetches the 5-day/3-hour forecast and keeps one midday sample per day.
func (c *Client) Forecast(ctx context.Context, city string, days int) (domain.Forecast, error) {
	var dto forecastDTO
	if err := c.get(ctx, "/forecast", city, &dto); err != nil {
		return domain.Forecast{}, err
	}

	name := dto.City.Name
	if name == "" {
		name = city
	}

	out := domain.Forecast{City: name}
	seen := map[string]bool{}
	for _, item := range dto.List {
		if len(out.Days) >= days {
			break
		}

		// dt_txt looks like "2026-08-29 12:00:00"; sample the midday slot.
		parts := strings.SplitN(item.DtTxt, " ", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[1], "12:") {
			continue
		}
		day := parts[0]
		if seen[day] {
			continue
		}
		seen[day] = true

		cond := ""
		if len(item.Weather) > 0 {
			cond = item.Weather[0].Description
		}
		out.Days = append(out.Days, domain.ForecastDay{
			Day:       day,
			TempC:     item.Main.Temp,
			Condition: cond,
		})
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, path, city string, out any) error {
	if strings.TrimSpace(c.apiKey) == "" {
		return &domain.OpError{
			Op:   "openweather.get",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("weather_api_key is not set: %w", domain.ErrInvalidConfig),
		}
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return &domain.OpError{
			Op:   "openweather.get",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.OpError{
			Op:   "openweather.get",
			Kind: domain.KindUnavailable,
			Err:  err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
		return &domain.OpError{
			Op:   "openweather.get",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("api request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))),
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBodyBytes)).Decode(out); err != nil {
		return &domain.OpError{
			Op:   "openweather.decode",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	return nil
}
