// Package react implements the Level 1 example agent: a reason-and-act
// planning loop. The model analyzes the task and reasons about each
// iteration; the engine picks actions from a step template, executes them
// against the weather provider, and nudges plan confidence after every
// action until the completion criteria hold or iterations run out.
package react

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/erinmikailstaples/Agent-Adventures/internal/agent"
	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/usecase/extract"
)

// confidenceDelta is applied after each action, up on success, down on
// failure.
const confidenceDelta = 0.1

// reasoning is the model's view of the current planning state. It feeds
// the transcript; action selection stays with the engine.
type reasoning struct {
	Status     string
	Priorities string
	Rationale  string
	Confidence float64
}

// Engine runs the ReAct planning loop.
type Engine struct {
	deps agent.Deps
}

var _ agent.Engine = (*Engine)(nil)

// New builds a react engine. Generator and Weather are both required.
func New(deps agent.Deps) *Engine {
	return &Engine{deps: deps}
}

// Run plans the given task: analyze, build an initial plan from the task
// type's template, iterate reason/act/update, then finalize. The plan is
// returned even when it fails to complete within the iteration budget.
func (e *Engine) Run(ctx context.Context, in agent.Input) (agent.Output, error) {
	if e.deps.Generator == nil {
		return agent.Output{}, fmt.Errorf("react engine: generator not configured")
	}
	if e.deps.Weather == nil {
		return agent.Output{}, fmt.Errorf("react engine: weather provider not configured")
	}
	if strings.TrimSpace(in.Task) == "" {
		return agent.Output{}, fmt.Errorf("react engine: task is required")
	}

	limits := in.Spec.Limits
	if limits.MaxIterations <= 0 {
		limits = domain.DefaultLimits()
	}

	now := e.deps.Clock()
	var out agent.Output

	analysis, aerr := e.analyzeTask(ctx, in)
	if aerr != nil {
		// Analysis failure degrades to a generic plan, matching the
		// loop's tolerance for unhelpful model replies.
		analysis = fallbackAnalysis(in.City)
		agent.Fallback(&out.Steps, now, "analyze_task", "using generic task analysis", aerr)
	} else {
		_ = agent.Step(&out.Steps, now, "analyze_task", func() (string, error) {
			return fmt.Sprintf("task_type=%s confidence=%.2f", analysis.TaskType, analysis.Confidence), nil
		})
	}
	if analysis.Location == "" {
		analysis.Location = in.City
	}

	plan := domain.Plan{
		TaskType:   analysis.TaskType,
		Status:     domain.PlanPlanning,
		Steps:      domain.TemplateFor(analysis.TaskType),
		Confidence: analysis.Confidence,
		CreatedAt:  now(),
	}
	_ = agent.Step(&out.Steps, now, "create_plan", func() (string, error) {
		return fmt.Sprintf("%d steps from %s template", len(plan.Steps), plan.TaskType), nil
	})

	for i := 0; i < limits.MaxIterations; i++ {
		name := fmt.Sprintf("iteration_%d", i+1)
		_ = agent.Step(&out.Steps, now, name, func() (string, error) {
			r := e.reason(ctx, in, &plan, analysis)
			detail := e.act(ctx, in, &plan, analysis)
			if r.Rationale != "" {
				detail = detail + "; " + r.Rationale
			}
			return detail, nil
		})

		if planComplete(plan, limits.ConfidenceThreshold) {
			break
		}
	}

	e.finalize(in, &plan, now)
	_ = agent.Step(&out.Steps, now, "finalize_plan", func() (string, error) {
		return string(plan.Status), nil
	})

	out.Plan = &plan
	out.Report = &domain.Report{
		Title: "Weather Planning Summary",
		Body:  plan.Summary,
	}
	if plan.Status != domain.PlanCompleted {
		out.Err = &domain.RunError{
			Kind:    domain.RunErrorModel,
			Message: fmt.Sprintf("plan not completed after %d iterations (confidence %.2f)", limits.MaxIterations, plan.Confidence),
		}
	}
	return out, nil
}

func (e *Engine) analyzeTask(ctx context.Context, in agent.Input) (domain.TaskAnalysis, error) {
	prompt := in.Spec.Prompts.Analyze
	if prompt == "" {
		prompt = defaultAnalyzePrompt
	}
	prompt = strings.ReplaceAll(prompt, "{{task}}", in.Task)

	resp, err := e.deps.Generator.Generate(ctx, domain.GenerateRequest{
		Model:       in.Model,
		System:      "You are a weather planning analyst. Respond only with valid JSON.",
		Prompt:      prompt,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   300,
	})
	if err != nil {
		return domain.TaskAnalysis{}, err
	}

	doc, err := extract.Doc(resp.Text)
	if err != nil {
		return domain.TaskAnalysis{}, fmt.Errorf("analyze reply: %w", err)
	}
	return domain.TaskAnalysis{
		TaskType:            extract.String(doc, "$.task_type", "general_weather_planning"),
		WeatherRequirements: extract.String(doc, "$.weather_requirements", "moderate_conditions"),
		TimeHorizonDays:     extract.Int(doc, "$.time_horizon", 3),
		Location:            extract.String(doc, "$.location", ""),
		Constraints:         extract.String(doc, "$.constraints", "none"),
		SuccessCriteria:     extract.String(doc, "$.success_criteria", "successful_activity_completion"),
		Confidence:          extract.Float(doc, "$.confidence", 0.5),
	}, nil
}

func fallbackAnalysis(city string) domain.TaskAnalysis {
	return domain.TaskAnalysis{
		TaskType:            "general_weather_planning",
		WeatherRequirements: "moderate_conditions",
		TimeHorizonDays:     3,
		Location:            city,
		Constraints:         "none",
		SuccessCriteria:     "successful_activity_completion",
		Confidence:          0.5,
	}
}

// reason asks the model about the current state. Its output informs the
// transcript only; a failed call falls back to scripted reasoning so the
// loop keeps moving.
func (e *Engine) reason(ctx context.Context, in agent.Input, plan *domain.Plan, analysis domain.TaskAnalysis) reasoning {
	prompt := in.Spec.Prompts.Reason
	if prompt == "" {
		prompt = defaultReasonPrompt
	}
	r := strings.NewReplacer(
		"{{plan}}", planJSON(plan),
		"{{analysis}}", analysisJSON(analysis),
	)
	prompt = r.Replace(prompt)

	resp, err := e.deps.Generator.Generate(ctx, domain.GenerateRequest{
		Model:       in.Model,
		System:      "You are a strategic planning analyst. Respond only with valid JSON.",
		Prompt:      prompt,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   300,
	})
	if err != nil {
		return scriptedReasoning()
	}
	doc, err := extract.Doc(resp.Text)
	if err != nil {
		return scriptedReasoning()
	}
	return reasoning{
		Status:     extract.String(doc, "$.current_status", "planning_in_progress"),
		Priorities: extract.String(doc, "$.next_priorities", "continue_planning"),
		Rationale:  extract.String(doc, "$.reasoning", ""),
		Confidence: extract.Float(doc, "$.confidence", 0.5),
	}
}

func scriptedReasoning() reasoning {
	return reasoning{
		Status:     "planning_in_progress",
		Priorities: "continue_planning",
		Rationale:  "basic planning continuation",
		Confidence: 0.5,
	}
}

// act executes the current template step and updates the plan. Step
// dispatch keys on the step wording, weather steps hit the provider,
// activity and contingency steps fill their plan slots, anything else
// just completes.
func (e *Engine) act(ctx context.Context, in agent.Input, plan *domain.Plan, analysis domain.TaskAnalysis) string {
	if plan.StepsDone() {
		return "all steps executed"
	}

	step := plan.Steps[plan.CurrentStep]
	lower := strings.ToLower(step)

	var msg string
	var err error
	switch {
	case strings.Contains(lower, "weather"):
		msg, err = e.weatherStep(ctx, plan, analysis)
	case strings.Contains(lower, "activit"):
		msg = activityStep(plan)
	case strings.Contains(lower, "contingency") || strings.Contains(lower, "alternative"):
		msg = contingencyStep(plan)
	default:
		msg = fmt.Sprintf("step %q completed", step)
	}

	completed := domain.CompletedStep{
		Step:        step,
		Index:       plan.CurrentStep,
		Status:      "completed",
		Success:     err == nil,
		Message:     msg,
		CompletedAt: e.deps.Clock()(),
	}
	if err != nil {
		completed.Status = "failed"
		completed.Message = err.Error()
	}
	plan.Completed = append(plan.Completed, completed)
	plan.CurrentStep++

	if err != nil {
		plan.Status = domain.PlanFailed
		plan.AdjustConfidence(-confidenceDelta)
		return fmt.Sprintf("step %q failed: %v", step, err)
	}
	plan.Status = domain.PlanInProgress
	plan.AdjustConfidence(confidenceDelta)
	return msg
}

func (e *Engine) weatherStep(ctx context.Context, plan *domain.Plan, analysis domain.TaskAnalysis) (string, error) {
	obs, err := e.deps.Weather.Current(ctx, analysis.Location)
	if err != nil {
		return "", err
	}
	plan.Weather = domain.AssessWeather(obs)

	msg := fmt.Sprintf("weather analyzed: %s, %s", plan.Weather.OverallCondition, plan.Weather.Recommendation)
	if analysis.TimeHorizonDays > 1 {
		// Current conditions carry the assessment; a failed forecast
		// lookup only costs the outlook.
		fc, ferr := e.deps.Weather.Forecast(ctx, analysis.Location, analysis.TimeHorizonDays)
		if ferr == nil && len(fc.Days) > 0 {
			plan.Outlook = fc.Days
			msg = fmt.Sprintf("%s; %d-day outlook", msg, len(fc.Days))
		}
	}
	return msg, nil
}

func activityStep(plan *domain.Plan) string {
	if strings.Contains(plan.Weather.Recommendation, "outdoor") {
		plan.Activities = []string{"hiking", "picnic", "outdoor_photography", "gardening"}
	} else {
		plan.Activities = []string{"indoor_museum", "cooking", "reading", "indoor_exercise"}
	}
	return fmt.Sprintf("%d activities planned", len(plan.Activities))
}

func contingencyStep(plan *domain.Plan) string {
	plan.Contingencies = []string{
		"Indoor alternative activities",
		"Weather-appropriate clothing recommendations",
		"Flexible timing for outdoor activities",
		"Emergency weather response plan",
	}
	return fmt.Sprintf("%d contingency plans created", len(plan.Contingencies))
}

// planComplete requires every step executed, confidence at threshold, and
// the weather, activity and contingency slots filled.
func planComplete(plan domain.Plan, threshold float64) bool {
	if !plan.StepsDone() {
		return false
	}
	if plan.Confidence < threshold {
		return false
	}
	return plan.Weather.OverallCondition != "" &&
		len(plan.Activities) > 0 &&
		len(plan.Contingencies) > 0
}

func (e *Engine) finalize(in agent.Input, plan *domain.Plan, now func() time.Time) {
	if planComplete(*plan, completionThreshold(in.Spec.Limits)) {
		plan.Status = domain.PlanCompleted
	}
	plan.CompletedAt = now()
	plan.Summary = planSummary(plan)
}

func completionThreshold(l domain.Limits) float64 {
	if l.ConfidenceThreshold <= 0 {
		return domain.DefaultLimits().ConfidenceThreshold
	}
	return l.ConfidenceThreshold
}

func planSummary(plan *domain.Plan) string {
	var b strings.Builder
	b.WriteString("Weather Planning Summary\n")
	b.WriteString("=======================\n")
	fmt.Fprintf(&b, "Task Type: %s\n", plan.TaskType)
	fmt.Fprintf(&b, "Status: %s\n", plan.Status)
	fmt.Fprintf(&b, "Confidence: %.0f%%\n", plan.Confidence*100)
	fmt.Fprintf(&b, "Steps Completed: %d\n\n", len(plan.Completed))
	fmt.Fprintf(&b, "Weather: %s, %s, humidity %s, wind %s\n",
		plan.Weather.OverallCondition, plan.Weather.TemperatureRange,
		plan.Weather.Humidity, plan.Weather.WindConditions)
	fmt.Fprintf(&b, "Recommendation: %s\n", plan.Weather.Recommendation)
	if len(plan.Outlook) > 0 {
		b.WriteString("Outlook:\n")
		for _, d := range plan.Outlook {
			fmt.Fprintf(&b, "  %s: %.1f°C, %s\n", d.Day, d.TempC, d.Condition)
		}
	}
	fmt.Fprintf(&b, "Planned Activities: %s\n", strings.Join(plan.Activities, ", "))
	fmt.Fprintf(&b, "Contingency Plans: %s\n", strings.Join(plan.Contingencies, "; "))
	return b.String()
}

func planJSON(plan *domain.Plan) string {
	state := map[string]any{
		"task_type":    plan.TaskType,
		"status":       string(plan.Status),
		"steps":        plan.Steps,
		"current_step": plan.CurrentStep,
		"confidence":   plan.Confidence,
		"activities":   plan.Activities,
	}
	b, err := json.Marshal(state)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func analysisJSON(a domain.TaskAnalysis) string {
	state := map[string]any{
		"task_type":            a.TaskType,
		"weather_requirements": a.WeatherRequirements,
		"time_horizon":         a.TimeHorizonDays,
		"location":             a.Location,
		"constraints":          a.Constraints,
		"success_criteria":     a.SuccessCriteria,
	}
	b, err := json.Marshal(state)
	if err != nil {
		return "{}"
	}
	return string(b)
}

const defaultAnalyzePrompt = `Analyze this weather planning task and extract the following information:

Task: "{{task}}"

Please provide a JSON response with:
- task_type: Type of weather planning (outdoor_activity, travel_planning, daily_schedule, etc.)
- weather_requirements: What weather conditions are needed
- time_horizon: How far ahead to plan (days)
- location: Specific location if mentioned
- constraints: Any limitations or requirements
- success_criteria: How to measure success
- confidence: How confident you are in the analysis (0-1)

Respond only with valid JSON.`

const defaultReasonPrompt = `Analyze the current planning state and provide reasoning:

Current Plan: {{plan}}
Task Analysis: {{analysis}}

Provide a JSON response with:
- current_status: Current planning status
- issues_identified: Any problems or gaps
- next_priorities: What should be addressed next
- reasoning: Your reasoning process
- confidence: Confidence in current state (0-1)

Respond only with valid JSON.`
