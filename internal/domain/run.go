package domain

import "time"

// RunErrorKind is a high-level classification of runtime errors.
type RunErrorKind string

const (
	RunErrorUnknown     RunErrorKind = "unknown"
	RunErrorTimeout     RunErrorKind = "timeout"
	RunErrorConn        RunErrorKind = "connection"
	RunErrorHTTP        RunErrorKind = "http"
	RunErrorModel       RunErrorKind = "model"
	RunErrorBadResponse RunErrorKind = "bad_response"
)

// RunError represents a structured error produced during an agent run.
type RunError struct {
	Kind    RunErrorKind
	Message string
}

// StepStatus marks how a transcript step ended.
type StepStatus string

const (
	StepOK       StepStatus = "ok"
	StepFailed   StepStatus = "failed"
	StepSkipped  StepStatus = "skipped"
	StepFallback StepStatus = "fallback"
)

// StepResult records one step of an agent run transcript.
type StepResult struct {
	Name     string
	Status   StepStatus
	Detail   string
	Duration time.Duration
	Error    *RunError
}

// Exchange is one user-query/agent-response pair kept in conversation history.
type Exchange struct {
	Query    string
	Response string
	At       time.Time
}

// Report is the human-readable output of an agent run.
type Report struct {
	Title string
	Body  string
}

// RunArtifact represents a persisted agent run for reproducibility.
type RunArtifact struct {
	ID string

	AgentName   string
	AgentKind   AgentKind
	ProfileName string

	// Input is the task (react), query (llm), or "" (fixed).
	Input string

	// Settings are the resolved vars the run executed with. Stores may
	// mask secret-looking keys before persisting.
	Settings Vars

	StartedAt  time.Time
	FinishedAt time.Time

	Steps  []StepResult
	Report *Report
	Plan   *Plan

	Error *RunError
}

// Failed reports whether the run ended in error or any step failed.
func (a RunArtifact) Failed() bool {
	if a.Error != nil {
		return true
	}
	for _, s := range a.Steps {
		if s.Status == StepFailed {
			return true
		}
	}
	return false
}

// NewRunError classifies an arbitrary error into a RunError.
func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	return &RunError{
		Kind:    classifyRunError(err),
		Message: err.Error(),
	}
}
