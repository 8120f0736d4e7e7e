// Package fixed implements the Level -1 example agent: a rigid
// fetch/parse/report pipeline with no branching and no retries. The only
// concession to flexibility is an optional model-written summary, and even
// that falls back to a scripted line when the generator is unreachable.
package fixed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/erinmikailstaples/Agent-Adventures/internal/agent"
	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

// Engine runs the fixed pipeline.
type Engine struct {
	deps agent.Deps
}

var _ agent.Engine = (*Engine)(nil)

// New builds a fixed engine. Generator is optional; the report degrades to
// the scripted summary without it.
func New(deps agent.Deps) *Engine {
	return &Engine{deps: deps}
}

// Run executes fetch, parse and report in order. Each step depends on the
// previous one; a failed fetch fails the run.
func (e *Engine) Run(ctx context.Context, in agent.Input) (agent.Output, error) {
	if e.deps.Weather == nil {
		return agent.Output{}, fmt.Errorf("fixed engine: weather provider not configured")
	}

	now := e.deps.Clock()
	var out agent.Output

	var obs domain.Observation
	err := agent.Step(&out.Steps, now, "fetch_weather", func() (string, error) {
		o, err := e.deps.Weather.Current(ctx, in.City)
		if err != nil {
			return "", err
		}
		obs = o
		return fmt.Sprintf("current conditions for %s", obs.City), nil
	})
	if err != nil {
		out.Err = domain.NewRunError(err)
		return out, nil
	}

	var assessment domain.WeatherAssessment
	_ = agent.Step(&out.Steps, now, "parse_weather", func() (string, error) {
		assessment = domain.AssessWeather(obs)
		return assessment.OverallCondition, nil
	})

	summary := scriptedSummary(obs)
	if e.deps.Generator != nil && in.Model != "" {
		var aiSummary string
		genErr := func() error {
			resp, err := e.deps.Generator.Generate(ctx, domain.GenerateRequest{
				Model:       in.Model,
				System:      systemPrompt(in.Spec.Prompts),
				Prompt:      summaryPrompt(obs),
				Temperature: 0.7,
				TopP:        0.9,
				MaxTokens:   300,
			})
			if err != nil {
				return err
			}
			aiSummary = strings.TrimSpace(resp.Text)
			return nil
		}()
		switch {
		case genErr != nil:
			agent.Fallback(&out.Steps, now, "summarize", "using scripted summary", genErr)
		case aiSummary == "":
			agent.Fallback(&out.Steps, now, "summarize", "empty model reply, using scripted summary", fmt.Errorf("empty response"))
		default:
			_ = agent.Step(&out.Steps, now, "summarize", func() (string, error) {
				summary = aiSummary
				return "model summary", nil
			})
		}
	}

	var body string
	_ = agent.Step(&out.Steps, now, "generate_report", func() (string, error) {
		body = renderReport(obs, summary, now())
		return "report ready", nil
	})

	out.Report = &domain.Report{
		Title: fmt.Sprintf("Weather Report for %s", obs.City),
		Body:  body,
	}
	return out, nil
}

func systemPrompt(p domain.Prompts) string {
	if p.System != "" {
		return p.System
	}
	return "You are a friendly weather reporter. Provide brief, helpful weather summaries."
}

func summaryPrompt(obs domain.Observation) string {
	var b strings.Builder
	b.WriteString("Based on this weather data, provide a brief, friendly weather summary:\n\n")
	fmt.Fprintf(&b, "Temperature: %.1f°C\n", obs.TempC)
	fmt.Fprintf(&b, "Feels Like: %.1f°C\n", obs.FeelsLikeC)
	fmt.Fprintf(&b, "Humidity: %d%%\n", obs.Humidity)
	fmt.Fprintf(&b, "Pressure: %d hPa\n", obs.PressureHPA)
	fmt.Fprintf(&b, "Description: %s\n", obs.Description)
	fmt.Fprintf(&b, "Wind Speed: %.1f km/h\n", obs.WindKMH)
	fmt.Fprintf(&b, "Location: %s\n\n", obs.City)
	b.WriteString("Provide a brief, friendly weather summary in 2-3 sentences.")
	return b.String()
}

func scriptedSummary(obs domain.Observation) string {
	return fmt.Sprintf("Currently %s with a temperature of %.1f°C in %s.",
		obs.Description, obs.TempC, obs.City)
}

// renderReport fills the fixed report template. The layout never varies;
// that rigidity is the point of this agent level.
func renderReport(obs domain.Observation, summary string, at time.Time) string {
	var b strings.Builder
	b.WriteString("WEATHER REPORT\n")
	b.WriteString("==============\n")
	fmt.Fprintf(&b, "City: %s\n", obs.City)
	fmt.Fprintf(&b, "Date: %s\n\n", at.Format(time.RFC3339))
	b.WriteString("Current Conditions:\n")
	fmt.Fprintf(&b, "- Temperature: %.1f°C\n", obs.TempC)
	fmt.Fprintf(&b, "- Feels Like: %.1f°C\n", obs.FeelsLikeC)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", obs.Humidity)
	fmt.Fprintf(&b, "- Pressure: %d hPa\n", obs.PressureHPA)
	fmt.Fprintf(&b, "- Description: %s\n", titleCase(obs.Description))
	fmt.Fprintf(&b, "- Wind Speed: %.1f km/h\n\n", obs.WindKMH)
	b.WriteString("Weather Summary:\n")
	b.WriteString(summary)
	b.WriteString("\n")
	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
