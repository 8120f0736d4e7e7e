package openweather

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "London" || q.Get("appid") != "key123" || q.Get("units") != "metric" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{
			"name": "London",
			"weather": [{"description": "light rain"}],
			"main": {"temp": 14.2, "feels_like": 13.1, "humidity": 81, "pressure": 1008},
			"wind": {"speed": 5.0}
		}`))
	}))
	defer srv.Close()

	c := New("key123", srv.Client(), WithBaseURL(srv.URL))
	obs, err := c.Current(t.Context(), "London")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}

	if obs.City != "London" || obs.Description != "light rain" {
		t.Errorf("obs = %+v", obs)
	}
	if obs.TempC != 14.2 || obs.Humidity != 81 || obs.PressureHPA != 1008 {
		t.Errorf("obs = %+v", obs)
	}
	// 5 m/s converts to 18 km/h.
	if math.Abs(obs.WindKMH-18) > 1e-9 {
		t.Errorf("WindKMH = %v", obs.WindKMH)
	}
}

func TestCurrentErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("key123", srv.Client(), WithBaseURL(srv.URL))
	if _, err := c.Current(t.Context(), "Atlantis"); !domain.IsKind(err, domain.KindExecution) {
		t.Errorf("bad city: %v", err)
	}

	noKey := New("", srv.Client(), WithBaseURL(srv.URL))
	if _, err := noKey.Current(t.Context(), "London"); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Errorf("missing key: %v", err)
	}
}

func TestForecastSamplesMiddaySlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"city": {"name": "Oslo"},
			"list": [
				{"dt_txt": "2026-08-29 09:00:00", "main": {"temp": 16}, "weather": [{"description": "cloudy"}]},
				{"dt_txt": "2026-08-29 12:00:00", "main": {"temp": 19}, "weather": [{"description": "sunny"}]},
				{"dt_txt": "2026-08-30 12:00:00", "main": {"temp": 17}, "weather": [{"description": "rain"}]},
				{"dt_txt": "2026-08-31 12:00:00", "main": {"temp": 15}, "weather": [{"description": "rain"}]}
			]
		}`))
	}))
	defer srv.Close()

	c := New("key123", srv.Client(), WithBaseURL(srv.URL))
	fc, err := c.Forecast(t.Context(), "Oslo", 2)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}

	if fc.City != "Oslo" || len(fc.Days) != 2 {
		t.Fatalf("forecast = %+v", fc)
	}
	if fc.Days[0].Day != "2026-08-29" || fc.Days[0].TempC != 19 || fc.Days[0].Condition != "sunny" {
		t.Errorf("day 0 = %+v", fc.Days[0])
	}
	if fc.Days[1].Day != "2026-08-30" {
		t.Errorf("day 1 = %+v", fc.Days[1])
	}
}

func TestStatic(t *testing.T) {
	s := NewStatic()

	obs, err := s.Current(t.Context(), "Anywhere")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if obs.City != "Anywhere" || obs.TempC != 22 || obs.Description != "partly cloudy" {
		t.Errorf("obs = %+v", obs)
	}

	fc, err := s.Forecast(t.Context(), "Anywhere", 2)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(fc.Days) != 2 {
		t.Errorf("days = %+v", fc.Days)
	}

	// Out-of-range horizons clamp instead of slicing past the data.
	for _, days := range []int{-1, 0, 5} {
		fc, err := s.Forecast(t.Context(), "Anywhere", days)
		if err != nil {
			t.Fatalf("Forecast(%d): %v", days, err)
		}
		if days <= 0 && len(fc.Days) != 0 {
			t.Errorf("Forecast(%d) days = %+v", days, fc.Days)
		}
		if days == 5 && len(fc.Days) != 3 {
			t.Errorf("Forecast(5) days = %+v", fc.Days)
		}
	}
}
