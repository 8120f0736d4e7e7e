package usecase

import (
	"context"
	"fmt"

	agentpkg "github.com/erinmikailstaples/Agent-Adventures/internal/agent"
	"github.com/erinmikailstaples/Agent-Adventures/internal/agent/fixed"
	"github.com/erinmikailstaples/Agent-Adventures/internal/agent/llmenhanced"
	"github.com/erinmikailstaples/Agent-Adventures/internal/agent/react"
	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

// EngineFactory builds an engine for an agent kind.
type EngineFactory func(kind domain.AgentKind, deps agentpkg.Deps) (agentpkg.Engine, error)

// DefaultEngineFactory wires the built-in engines.
func DefaultEngineFactory(kind domain.AgentKind, deps agentpkg.Deps) (agentpkg.Engine, error) {
	switch kind {
	case domain.AgentFixed:
		return fixed.New(deps), nil
	case domain.AgentLLM:
		return llmenhanced.New(deps), nil
	case domain.AgentReAct:
		return react.New(deps), nil
	default:
		return nil, &domain.OpError{
			Op:   "run.engine",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unknown agent kind %q: %w", kind, domain.ErrInvalidConfig),
		}
	}
}

type RunAgent struct {
	agents   ports.AgentLoader
	profiles ports.ProfileLoader
	store    ports.ReportStore
	deps     agentpkg.Deps
	engines  EngineFactory
	resolver *domain.VarResolver
}

type RunAgentOption func(*RunAgent)

// WithEngineFactory overrides engine construction (useful for tests).
func WithEngineFactory(f EngineFactory) RunAgentOption {
	return func(uc *RunAgent) {
		if f != nil {
			uc.engines = f
		}
	}
}

// WithRunResolver overrides the var resolver (useful for tests).
func WithRunResolver(vr *domain.VarResolver) RunAgentOption {
	return func(uc *RunAgent) {
		if vr != nil {
			uc.resolver = vr
		}
	}
}

func NewRunAgent(al ports.AgentLoader, pl ports.ProfileLoader, store ports.ReportStore, deps agentpkg.Deps, opts ...RunAgentOption) *RunAgent {
	uc := &RunAgent{
		agents:   al,
		profiles: pl,
		store:    store,
		deps:     deps,
		engines:  DefaultEngineFactory,
		resolver: domain.NewVarResolver(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RunParams selects an agent, a profile and the user input for one run.
type RunParams struct {
	AgentPath     string
	ProfileName   string
	Task          string
	Query         string
	ModelOverride string
	CityOverride  string
}

// Execute loads the agent and profile, resolves settings, runs the engine
// and persists the run artifact. The artifact is returned even on a run
// failure; the error return is reserved for configuration problems.
func (uc *RunAgent) Execute(ctx context.Context, p RunParams) (domain.RunArtifact, error) {
	spec, err := uc.agents.LoadAgent(p.AgentPath)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	profile, err := uc.profiles.LoadProfile(p.ProfileName)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	// spec vars < profile vars
	vars := domain.Merge(spec.Vars, profile.Vars)

	rt, err := uc.resolver.NewRuntime(vars)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	model, city, err := resolveSettings(rt, spec, vars, p)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	prompts, err := rt.ResolvePrompts(spec.Prompts)
	if err != nil {
		return domain.RunArtifact{}, err
	}
	spec.Prompts = prompts

	if spec.Limits.MaxIterations == 0 && spec.Limits.ConfidenceThreshold == 0 {
		spec.Limits = domain.DefaultLimits()
	}
	if len(spec.Safety.BlockedTerms) == 0 && spec.Safety.MaxResponseChars == 0 {
		spec.Safety = domain.DefaultSafety()
	}

	engine, err := uc.engines(spec.Kind, uc.deps)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	now := uc.deps.Clock()
	artifact := domain.RunArtifact{
		AgentName:   spec.Name,
		AgentKind:   spec.Kind,
		ProfileName: profile.Name,
		Input:       runInput(spec.Kind, p),
		Settings:    domain.Merge(vars, domain.Vars{"model": model, "city": city}),
		StartedAt:   now(),
	}

	out, err := engine.Run(ctx, agentpkg.Input{
		Spec:  spec,
		Vars:  vars,
		Model: model,
		City:  city,
		Task:  p.Task,
		Query: p.Query,
	})
	artifact.FinishedAt = now()
	if err != nil {
		return artifact, err
	}

	artifact.Steps = out.Steps
	artifact.Report = out.Report
	artifact.Plan = out.Plan
	artifact.Error = out.Err

	if uc.store != nil {
		id, err := uc.store.SaveRun(artifact)
		if err != nil {
			return artifact, err
		}
		artifact.ID = id
	}

	return artifact, nil
}

// resolveSettings picks the model and city for a run. Explicit overrides
// win, then profile vars, then the spec values, which may themselves
// reference {{vars}}.
func resolveSettings(rt *domain.RuntimeResolver, spec domain.AgentSpec, vars domain.Vars, p RunParams) (model, city string, err error) {
	model = spec.Model
	if v, ok := domain.Get(vars, "model"); ok && v != "" {
		model = v
	}
	if p.ModelOverride != "" {
		model = p.ModelOverride
	}
	if model, err = rt.ResolveString(model); err != nil {
		return "", "", err
	}

	city = spec.City
	if v, ok := domain.Get(vars, "city"); ok && v != "" {
		city = v
	}
	if p.CityOverride != "" {
		city = p.CityOverride
	}
	if city, err = rt.ResolveString(city); err != nil {
		return "", "", err
	}

	return model, city, nil
}

func runInput(kind domain.AgentKind, p RunParams) string {
	switch kind {
	case domain.AgentReAct:
		return p.Task
	case domain.AgentLLM:
		return p.Query
	default:
		return ""
	}
}
