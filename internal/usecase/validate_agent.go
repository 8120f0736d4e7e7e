package usecase

import (
	"context"
	"fmt"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

type ValidateAgent struct {
	agents   ports.AgentLoader
	profiles ports.ProfileLoader
	resolver *domain.VarResolver
}

type ValidateOption func(*ValidateAgent)

// WithVarResolver overrides the var resolver (useful for tests).
func WithVarResolver(vr *domain.VarResolver) ValidateOption {
	return func(uc *ValidateAgent) {
		if vr != nil {
			uc.resolver = vr
		}
	}
}

func NewValidateAgent(al ports.AgentLoader, pl ports.ProfileLoader, opts ...ValidateOption) *ValidateAgent {
	uc := &ValidateAgent{
		agents:   al,
		profiles: pl,
		resolver: domain.NewVarResolver(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute checks an agent + profile pair without calling any backend.
// It resolves every templated field ({{vars}}) so missing variables
// surface before a run, and verifies kind-specific settings.
func (uc *ValidateAgent) Execute(ctx context.Context, agentPath, profileNameOrPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	spec, err := uc.agents.LoadAgent(agentPath)
	if err != nil {
		return err
	}

	profile, err := uc.profiles.LoadProfile(profileNameOrPath)
	if err != nil {
		return err
	}

	// spec vars < profile vars
	vars := domain.Merge(spec.Vars, profile.Vars)

	rt, err := uc.resolver.NewRuntime(vars)
	if err != nil {
		return err
	}

	model, city, err := resolveSettings(rt, spec, vars, RunParams{})
	if err != nil {
		return fmt.Errorf("agent %q: %w", spec.Name, err)
	}

	if _, err := rt.ResolvePrompts(spec.Prompts); err != nil {
		return fmt.Errorf("agent %q: %w", spec.Name, err)
	}

	if spec.Kind != domain.AgentFixed && model == "" {
		return &domain.OpError{
			Op:   "validate.model",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("agent %q needs a model: %w", spec.Name, domain.ErrInvalidConfig),
		}
	}
	if city == "" {
		return &domain.OpError{
			Op:   "validate.city",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("agent %q needs a city: %w", spec.Name, domain.ErrInvalidConfig),
		}
	}

	return nil
}
