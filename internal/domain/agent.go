package domain

// AgentKind selects the engine an agent spec runs on.
type AgentKind string

const (
	// AgentFixed is Level -1: a rigid scripted pipeline.
	AgentFixed AgentKind = "fixed"
	// AgentLLM is Level 0: a fixed workflow with a language model in the loop.
	AgentLLM AgentKind = "llm"
	// AgentReAct is Level 1: a reason-and-act planning loop.
	AgentReAct AgentKind = "react"
)

// Limits bounds an agent run.
type Limits struct {
	// MaxIterations caps ReAct planning iterations.
	MaxIterations int
	// ConfidenceThreshold is the minimum plan confidence for completion (0..1).
	ConfidenceThreshold float64
}

// Safety configures output filtering for model-backed agents.
type Safety struct {
	// BlockedTerms cause a boundary rejection when matched in intents,
	// and are redacted from generated responses.
	BlockedTerms []string
	// MaxResponseChars truncates generated responses (0 = no cap).
	MaxResponseChars int
}

// Prompts carries optional overrides for the engine's built-in prompts.
// Values may reference {{vars}}; they are resolved before the run.
type Prompts struct {
	System  string
	Analyze string
	Respond string
	Reason  string
}

// AgentSpec is a declarative agent definition loaded from the workspace.
type AgentSpec struct {
	Name string
	Kind AgentKind

	// Model is the generator model (e.g. "llama3.2"). Profile vars may override.
	Model string
	// City is the default location for weather lookups.
	City string

	// Vars are default variables available to prompt templates.
	// They can be overridden by profile vars.
	Vars Vars

	Limits  Limits
	Safety  Safety
	Prompts Prompts
}

// AgentRef is a lightweight reference to an agent spec file on disk.
type AgentRef struct {
	Name string
	Kind AgentKind
	Path string
}

// DefaultLimits are applied when a spec leaves limits unset.
func DefaultLimits() Limits {
	return Limits{
		MaxIterations:       5,
		ConfidenceThreshold: 0.7,
	}
}

// DefaultSafety is applied when a spec leaves safety unset.
func DefaultSafety() Safety {
	return Safety{
		BlockedTerms:     []string{"harmful", "dangerous", "illegal"},
		MaxResponseChars: 4000,
	}
}
