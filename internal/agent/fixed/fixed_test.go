package fixed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/erinmikailstaples/Agent-Adventures/internal/agent"
	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

type fakeWeather struct {
	obs domain.Observation
	err error
}

func (f *fakeWeather) Current(ctx context.Context, city string) (domain.Observation, error) {
	if f.err != nil {
		return domain.Observation{}, f.err
	}
	obs := f.obs
	if obs.City == "" {
		obs.City = city
	}
	return obs, nil
}

func (f *fakeWeather) Forecast(ctx context.Context, city string, days int) (domain.Forecast, error) {
	return domain.Forecast{City: city}, nil
}

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResponse, error) {
	f.calls++
	if f.err != nil {
		return domain.GenerateResponse{}, f.err
	}
	return domain.GenerateResponse{Text: f.text}, nil
}

func testInput() agent.Input {
	return agent.Input{
		Spec:  domain.AgentSpec{Name: "weather-reporter", Kind: domain.AgentFixed},
		Model: "llama3.2",
		City:  "London",
	}
}

func TestRunScriptedWithoutGenerator(t *testing.T) {
	weather := &fakeWeather{obs: domain.Observation{
		City:        "London",
		Description: "partly cloudy",
		TempC:       22,
		FeelsLikeC:  21,
		Humidity:    65,
		WindKMH:     10,
		PressureHPA: 1012,
	}}
	eng := New(agent.Deps{Weather: weather, Now: func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}})

	out, err := eng.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Err != nil {
		t.Fatalf("unexpected run error: %+v", out.Err)
	}
	if out.Report == nil {
		t.Fatal("expected a report")
	}
	if !strings.Contains(out.Report.Body, "WEATHER REPORT") {
		t.Errorf("report missing header:\n%s", out.Report.Body)
	}
	if !strings.Contains(out.Report.Body, "Temperature: 22.0°C") {
		t.Errorf("report missing temperature:\n%s", out.Report.Body)
	}
	if !strings.Contains(out.Report.Body, "Partly Cloudy") {
		t.Errorf("description should be title-cased:\n%s", out.Report.Body)
	}

	names := stepNames(out.Steps)
	want := []string{"fetch_weather", "parse_weather", "generate_report"}
	if len(names) != len(want) {
		t.Fatalf("steps = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRunUsesModelSummary(t *testing.T) {
	weather := &fakeWeather{obs: domain.Observation{City: "London", Description: "sunny", TempC: 25}}
	gen := &fakeGenerator{text: "A lovely sunny day in London."}
	eng := New(agent.Deps{Weather: weather, Generator: gen})

	out, err := eng.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if !strings.Contains(out.Report.Body, "A lovely sunny day in London.") {
		t.Errorf("report missing model summary:\n%s", out.Report.Body)
	}
}

func TestRunFallsBackWhenModelFails(t *testing.T) {
	weather := &fakeWeather{obs: domain.Observation{City: "London", Description: "sunny", TempC: 25}}
	gen := &fakeGenerator{err: errors.New("connection refused")}
	eng := New(agent.Deps{Weather: weather, Generator: gen})

	out, err := eng.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Err != nil {
		t.Fatalf("model failure must not fail the run: %+v", out.Err)
	}
	if !strings.Contains(out.Report.Body, "Currently sunny") {
		t.Errorf("expected scripted summary:\n%s", out.Report.Body)
	}

	var sawFallback bool
	for _, s := range out.Steps {
		if s.Name == "summarize" && s.Status == domain.StepFallback {
			sawFallback = true
		}
	}
	if !sawFallback {
		t.Errorf("expected a fallback summarize step, steps = %v", stepNames(out.Steps))
	}
}

func TestRunFailsWhenFetchFails(t *testing.T) {
	weather := &fakeWeather{err: errors.New("api key missing")}
	eng := New(agent.Deps{Weather: weather})

	out, err := eng.Run(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Err == nil {
		t.Fatal("expected run error when fetch fails")
	}
	if out.Report != nil {
		t.Errorf("no report expected on fetch failure")
	}
	if len(out.Steps) != 1 || out.Steps[0].Status != domain.StepFailed {
		t.Errorf("expected a single failed step, got %v", out.Steps)
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"partly cloudy", "Partly Cloudy"},
		{"überwiegend bewölkt", "Überwiegend Bewölkt"},
		{"clear", "Clear"},
		{"", ""},
	}
	for _, c := range cases {
		if got := titleCase(c.in); got != c.want {
			t.Errorf("titleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func stepNames(steps []domain.StepResult) []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	return names
}
