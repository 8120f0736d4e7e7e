package domain

import "time"

// PlanStatus tracks a ReAct plan through its lifecycle.
type PlanStatus string

const (
	PlanPlanning   PlanStatus = "planning"
	PlanInProgress PlanStatus = "planning_in_progress"
	PlanFailed     PlanStatus = "planning_failed"
	PlanCompleted  PlanStatus = "completed"
)

// TaskAnalysis is the structured understanding of a planning task.
type TaskAnalysis struct {
	TaskType            string
	WeatherRequirements string
	TimeHorizonDays     int
	Location            string
	Constraints         string
	SuccessCriteria     string
	Confidence          float64
}

// CompletedStep records the outcome of one executed plan step.
type CompletedStep struct {
	Step        string
	Index       int
	Status      string
	Success     bool
	Message     string
	CompletedAt time.Time
}

// Plan is the working state of a ReAct planning run.
type Plan struct {
	TaskType    string
	Status      PlanStatus
	Steps       []string
	CurrentStep int
	Completed   []CompletedStep

	Weather WeatherAssessment
	// Outlook holds the multi-day forecast when the task plans ahead.
	Outlook       []ForecastDay
	Activities    []string
	Contingencies []string

	// Confidence in [0, 1]; nudged up or down after each action.
	Confidence float64

	CreatedAt   time.Time
	CompletedAt time.Time
	Summary     string
}

// AdjustConfidence moves plan confidence by delta, clamped to [0, 1].
func (p *Plan) AdjustConfidence(delta float64) {
	c := p.Confidence + delta
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	p.Confidence = c
}

// StepsDone reports whether every step has been executed.
func (p *Plan) StepsDone() bool {
	return p.CurrentStep >= len(p.Steps)
}

// PlanTemplates maps a task type to its step template. Unknown task types
// fall back to "outdoor_activity".
func PlanTemplates() map[string][]string {
	return map[string][]string{
		"outdoor_activity": {
			"Analyze weather conditions",
			"Identify suitable activities",
			"Plan activity timeline",
			"Prepare contingency plans",
			"Finalize activity plan",
		},
		"travel_planning": {
			"Research destination weather",
			"Plan weather-appropriate activities",
			"Pack appropriate clothing",
			"Plan indoor alternatives",
			"Create flexible itinerary",
		},
		"daily_schedule": {
			"Check weather forecast",
			"Optimize outdoor activities",
			"Schedule indoor alternatives",
			"Plan weather-dependent tasks",
			"Create flexible schedule",
		},
	}
}

// TemplateFor returns the step template for a task type, falling back to
// the outdoor_activity template.
func TemplateFor(taskType string) []string {
	templates := PlanTemplates()
	if steps, ok := templates[taskType]; ok {
		out := make([]string, len(steps))
		copy(out, steps)
		return out
	}
	steps := templates["outdoor_activity"]
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}
