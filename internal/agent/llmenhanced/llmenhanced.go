// Package llmenhanced implements the Level 0 example agent: a fixed
// query pipeline with a language model doing the understanding and the
// wording. The workflow itself never changes; the model is called twice,
// once to analyze the query and once to phrase the answer, and every
// reply passes through boundary and safety checks.
package llmenhanced

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/erinmikailstaples/Agent-Adventures/internal/agent"
	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/usecase/extract"
)

// minAnalysisConfidence rejects queries the analyzer barely understood.
const minAnalysisConfidence = 0.3

// historyLimit bounds the in-memory conversation history.
const historyLimit = 10

// queryAnalysis is the structured understanding of one user query.
type queryAnalysis struct {
	Intent      string
	Location    string
	TimeFrame   string
	WeatherType string
	Confidence  float64
}

// Engine runs the LLM-enhanced pipeline. It keeps a bounded conversation
// history across Run calls, so one Engine serves one session.
type Engine struct {
	deps    agent.Deps
	history []domain.Exchange
}

var _ agent.Engine = (*Engine)(nil)

// New builds an llm engine. Generator and Weather are both required.
func New(deps agent.Deps) *Engine {
	return &Engine{deps: deps}
}

// History returns the exchanges recorded so far, newest last.
func (e *Engine) History() []domain.Exchange {
	out := make([]domain.Exchange, len(e.history))
	copy(out, e.history)
	return out
}

// ClearHistory resets the conversation.
func (e *Engine) ClearHistory() {
	e.history = nil
}

// Run answers a single natural-language query: analyze, boundary check,
// resolve needs, respond, filter. Queries that fall outside the weather
// domain get a scripted refusal instead of a model answer.
func (e *Engine) Run(ctx context.Context, in agent.Input) (agent.Output, error) {
	if e.deps.Generator == nil {
		return agent.Output{}, fmt.Errorf("llm engine: generator not configured")
	}
	if e.deps.Weather == nil {
		return agent.Output{}, fmt.Errorf("llm engine: weather provider not configured")
	}
	if strings.TrimSpace(in.Query) == "" {
		return agent.Output{}, fmt.Errorf("llm engine: query is required")
	}

	now := e.deps.Clock()
	safety := in.Spec.Safety
	var out agent.Output

	analysis, aerr := e.analyzeQuery(ctx, in)
	if aerr != nil {
		// A failed analysis degrades to an unknown intent rather than
		// aborting; the boundary check then refuses the query.
		analysis = queryAnalysis{Intent: "unknown", TimeFrame: "current", WeatherType: "general"}
		agent.Fallback(&out.Steps, now, "analyze_query", "treating intent as unknown", aerr)
	} else {
		_ = agent.Step(&out.Steps, now, "analyze_query", func() (string, error) {
			return fmt.Sprintf("intent=%s confidence=%.2f", analysis.Intent, analysis.Confidence), nil
		})
	}

	if reason := boundaryViolation(analysis, safety); reason != "" {
		_ = agent.Step(&out.Steps, now, "check_boundaries", func() (string, error) {
			return "rejected: " + reason, nil
		})
		refusal := boundaryRefusal(in.Query)
		e.remember(in.Query, refusal, now())
		out.Report = &domain.Report{Title: "Weather Assistant", Body: refusal}
		return out, nil
	}
	_ = agent.Step(&out.Steps, now, "check_boundaries", func() (string, error) {
		return "within weather domain", nil
	})

	if analysis.Location == "" {
		analysis.Location = in.City
	}
	if analysis.TimeFrame == "" {
		analysis.TimeFrame = "current"
	}
	if analysis.WeatherType == "" {
		analysis.WeatherType = "general"
	}

	var obs domain.Observation
	err := agent.Step(&out.Steps, now, "fetch_weather", func() (string, error) {
		o, err := e.deps.Weather.Current(ctx, analysis.Location)
		if err != nil {
			return "", err
		}
		obs = o
		return fmt.Sprintf("current conditions for %s", o.City), nil
	})
	if err != nil {
		out.Err = domain.NewRunError(err)
		return out, nil
	}

	var response string
	err = agent.Step(&out.Steps, now, "generate_response", func() (string, error) {
		r, err := e.respond(ctx, in, analysis, obs)
		if err != nil {
			return "", err
		}
		response = r
		return "response generated", nil
	})
	if err != nil {
		out.Err = domain.NewRunError(err)
		return out, nil
	}

	_ = agent.Step(&out.Steps, now, "apply_safety_filters", func() (string, error) {
		var note string
		response, note = filterResponse(response, safety)
		if note == "" {
			note = "clean"
		}
		return note, nil
	})

	e.remember(in.Query, response, now())
	out.Report = &domain.Report{Title: "Weather Assistant", Body: response}
	return out, nil
}

func (e *Engine) analyzeQuery(ctx context.Context, in agent.Input) (queryAnalysis, error) {
	prompt := in.Spec.Prompts.Analyze
	if prompt == "" {
		prompt = defaultAnalyzePrompt
	}
	prompt = strings.ReplaceAll(prompt, "{{query}}", in.Query)

	resp, err := e.deps.Generator.Generate(ctx, domain.GenerateRequest{
		Model:       in.Model,
		System:      "You are a weather query analyzer. Respond only with valid JSON.",
		Prompt:      prompt,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   300,
	})
	if err != nil {
		return queryAnalysis{}, err
	}

	doc, err := extract.Doc(resp.Text)
	if err != nil {
		return queryAnalysis{}, fmt.Errorf("analyze reply: %w", err)
	}
	return queryAnalysis{
		Intent:      extract.String(doc, "$.intent", "unknown"),
		Location:    extract.String(doc, "$.location", ""),
		TimeFrame:   extract.String(doc, "$.time_frame", "current"),
		WeatherType: extract.String(doc, "$.weather_type", "general"),
		Confidence:  extract.Float(doc, "$.confidence", 0),
	}, nil
}

func (e *Engine) respond(ctx context.Context, in agent.Input, a queryAnalysis, obs domain.Observation) (string, error) {
	prompt := in.Spec.Prompts.Respond
	if prompt == "" {
		prompt = defaultRespondPrompt
	}
	r := strings.NewReplacer(
		"{{query}}", in.Query,
		"{{location}}", a.Location,
		"{{time_frame}}", a.TimeFrame,
		"{{weather_type}}", a.WeatherType,
		"{{intent}}", a.Intent,
		"{{conditions}}", describeObservation(obs),
	)
	prompt = r.Replace(prompt)

	system := in.Spec.Prompts.System
	if system == "" {
		system = "You are a helpful weather assistant. Provide accurate, helpful weather information in a conversational tone."
	}

	resp, err := e.deps.Generator.Generate(ctx, domain.GenerateRequest{
		Model:       in.Model,
		System:      system,
		Prompt:      prompt,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   300,
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// boundaryViolation returns a non-empty reason when the analysis falls
// outside the agent's allowed domain.
func boundaryViolation(a queryAnalysis, safety domain.Safety) string {
	if a.Intent == "unknown" {
		return "intent not recognized"
	}
	if a.Confidence < minAnalysisConfidence {
		return fmt.Sprintf("confidence %.2f below threshold", a.Confidence)
	}
	intent := strings.ToLower(a.Intent)
	for _, term := range safety.BlockedTerms {
		if strings.Contains(intent, strings.ToLower(term)) {
			return "blocked term in intent"
		}
	}
	return ""
}

func boundaryRefusal(query string) string {
	return fmt.Sprintf("I can only help with weather-related questions. Your query %q seems to be outside my area of expertise. Please ask about weather conditions, temperatures, or weather forecasts.", query)
}

// filterResponse applies blocked-term and length checks. A blocked term in
// the response replaces it wholesale; an overlong response is truncated.
func filterResponse(response string, safety domain.Safety) (string, string) {
	lower := strings.ToLower(response)
	for _, term := range safety.BlockedTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return "I can only provide weather-related information. Please ask about weather conditions.", "blocked term in response"
		}
	}
	if safety.MaxResponseChars > 0 {
		// Cap counts characters, not bytes, so a multi-byte rune is
		// never split.
		if runes := []rune(response); len(runes) > safety.MaxResponseChars {
			return string(runes[:safety.MaxResponseChars]) + "...", "truncated"
		}
	}
	return response, ""
}

func describeObservation(obs domain.Observation) string {
	return fmt.Sprintf("%s, %.1f°C (feels like %.1f°C), humidity %d%%, wind %.1f km/h in %s",
		obs.Description, obs.TempC, obs.FeelsLikeC, obs.Humidity, obs.WindKMH, obs.City)
}

func (e *Engine) remember(query, response string, at time.Time) {
	e.history = append(e.history, domain.Exchange{
		Query:    query,
		Response: response,
		At:       at,
	})
	if len(e.history) > historyLimit {
		e.history = e.history[len(e.history)-historyLimit:]
	}
}

const defaultAnalyzePrompt = `Analyze this weather-related query and extract the following information:

Query: "{{query}}"

Please provide a JSON response with:
- intent: What the user wants to know about weather
- location: Any specific location mentioned (if any)
- time_frame: When they want weather info (today, tomorrow, weekend, etc.)
- weather_type: What type of weather info (temperature, rain, wind, etc.)
- confidence: How confident you are in the analysis (0-1)

Respond only with valid JSON.`

const defaultRespondPrompt = `You are a helpful weather assistant. The user asked: "{{query}}"

Based on their query, they want:
- Location: {{location}}
- Time frame: {{time_frame}}
- Weather type: {{weather_type}}
- Intent: {{intent}}

Current conditions: {{conditions}}

Generate a helpful, contextual response that:
1. Acknowledges their specific question
2. Provides relevant weather information
3. Uses natural, conversational language
4. Stays within weather-related topics only

Keep the response concise and helpful.`
