// Package agent defines the engine contract shared by the runnable
// example agents (fixed, llm, react).
package agent

import (
	"context"
	"time"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

// Input carries the fully resolved settings for one run.
type Input struct {
	Spec domain.AgentSpec
	// Vars are the merged spec+profile vars after placeholder resolution.
	Vars domain.Vars

	Model string
	City  string

	// Task is the planning task for react agents.
	Task string
	// Query is the user query for llm agents.
	Query string
}

// Output is the result of one engine run. Runtime failures land in Err;
// Engine.Run returns a non-nil error only for configuration-level problems.
type Output struct {
	Steps  []domain.StepResult
	Report *domain.Report
	Plan   *domain.Plan
	Err    *domain.RunError
}

// Engine executes one agent run.
type Engine interface {
	Run(ctx context.Context, in Input) (Output, error)
}

// Deps are the collaborators an engine may use. Generator may be nil for
// fixed agents; Weather must always be set (the static provider stands in
// when no API key is configured).
type Deps struct {
	Generator ports.Generator
	Weather   ports.WeatherProvider
	Now       func() time.Time
}

// Clock returns the deps' time source, defaulting to time.Now.
func (d Deps) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}

// Step times fn and records it in the transcript. A returned error marks
// the step failed and is classified into the step's RunError.
func Step(steps *[]domain.StepResult, now func() time.Time, name string, fn func() (string, error)) error {
	start := now()
	detail, err := fn()
	dur := now().Sub(start)

	s := domain.StepResult{
		Name:     name,
		Status:   domain.StepOK,
		Detail:   detail,
		Duration: dur,
	}
	if err != nil {
		s.Status = domain.StepFailed
		s.Error = domain.NewRunError(err)
		if detail == "" {
			s.Detail = err.Error()
		}
	}

	*steps = append(*steps, s)
	return err
}

// Fallback records a step that degraded instead of failing: the engine
// carried on with scripted behavior after a model error.
func Fallback(steps *[]domain.StepResult, now func() time.Time, name, detail string, cause error) {
	*steps = append(*steps, domain.StepResult{
		Name:   name,
		Status: domain.StepFallback,
		Detail: detail,
		Error:  domain.NewRunError(cause),
	})
}
