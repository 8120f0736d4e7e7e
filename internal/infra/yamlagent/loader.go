// Package yamlagent loads declarative agent specs from workspace YAML files.
package yamlagent

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

type Loader struct {
	agentsDir string
}

type Option func(*Loader)

func WithAgentsDir(dir string) Option {
	return func(l *Loader) { l.agentsDir = dir }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{agentsDir: "agents"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.AgentLoader = (*Loader)(nil)

func (l *Loader) LoadAgent(path string) (domain.AgentSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.AgentSpec{}, &domain.OpError{
			Op:   "yamlagent.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ya yamlAgent
	if err := yaml.Unmarshal(b, &ya); err != nil {
		return domain.AgentSpec{}, &domain.OpError{
			Op:   "yamlagent.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, ya)
}

func (l *Loader) ListAgents(root string) ([]domain.AgentRef, error) {
	dir := filepath.Join(root, l.agentsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlagent.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.AgentRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		low := strings.ToLower(name)
		if !strings.HasSuffix(low, ".yaml") && !strings.HasSuffix(low, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, k, _ := readHeader(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.AgentRef{Name: n, Kind: k, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readHeader(path string) (string, domain.AgentKind, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	var v struct {
		Name string `yaml:"name"`
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", "", err
	}
	k, _ := parseKind(v.Kind)
	return v.Name, k, nil
}

type yamlAgent struct {
	Name  string            `yaml:"name"`
	Kind  string            `yaml:"kind"`
	Model string            `yaml:"model"`
	City  string            `yaml:"city"`
	Vars  map[string]string `yaml:"vars"`

	Limits  yamlLimits  `yaml:"limits"`
	Safety  yamlSafety  `yaml:"safety"`
	Prompts yamlPrompts `yaml:"prompts"`
}

type yamlLimits struct {
	MaxIterations       *int     `yaml:"max_iterations"`
	ConfidenceThreshold *float64 `yaml:"confidence_threshold"`
}

type yamlSafety struct {
	BlockedTerms     []string `yaml:"blocked_terms"`
	MaxResponseChars *int     `yaml:"max_response_chars"`
}

type yamlPrompts struct {
	System  string `yaml:"system"`
	Analyze string `yaml:"analyze"`
	Respond string `yaml:"respond"`
	Reason  string `yaml:"reason"`
}

func mapAndValidate(path string, ya yamlAgent) (domain.AgentSpec, error) {
	if strings.TrimSpace(ya.Name) == "" {
		return domain.AgentSpec{}, invalidField(path, "name", "agent name is required")
	}

	kind, err := parseKind(ya.Kind)
	if err != nil {
		return domain.AgentSpec{}, invalidField(path, "kind", err.Error())
	}

	spec := domain.AgentSpec{
		Name:  ya.Name,
		Kind:  kind,
		Model: strings.TrimSpace(ya.Model),
		City:  strings.TrimSpace(ya.City),
		Vars:  domain.Vars(ya.Vars),
		Prompts: domain.Prompts{
			System:  ya.Prompts.System,
			Analyze: ya.Prompts.Analyze,
			Respond: ya.Prompts.Respond,
			Reason:  ya.Prompts.Reason,
		},
	}

	if spec.Vars == nil {
		spec.Vars = domain.Vars{}
	}

	spec.Limits = domain.DefaultLimits()
	if ya.Limits.MaxIterations != nil {
		if *ya.Limits.MaxIterations <= 0 {
			return domain.AgentSpec{}, invalidField(path, "limits.max_iterations", "must be positive")
		}
		spec.Limits.MaxIterations = *ya.Limits.MaxIterations
	}
	if ya.Limits.ConfidenceThreshold != nil {
		t := *ya.Limits.ConfidenceThreshold
		if t < 0 || t > 1 {
			return domain.AgentSpec{}, invalidField(path, "limits.confidence_threshold", "must be in [0, 1]")
		}
		spec.Limits.ConfidenceThreshold = t
	}

	spec.Safety = domain.DefaultSafety()
	if ya.Safety.BlockedTerms != nil {
		spec.Safety.BlockedTerms = ya.Safety.BlockedTerms
	}
	if ya.Safety.MaxResponseChars != nil {
		if *ya.Safety.MaxResponseChars < 0 {
			return domain.AgentSpec{}, invalidField(path, "safety.max_response_chars", "must not be negative")
		}
		spec.Safety.MaxResponseChars = *ya.Safety.MaxResponseChars
	}

	return spec, nil
}

func parseKind(k string) (domain.AgentKind, error) {
	low := strings.ToLower(strings.TrimSpace(k))
	switch domain.AgentKind(low) {
	case domain.AgentFixed, domain.AgentLLM, domain.AgentReAct:
		return domain.AgentKind(low), nil
	default:
		return "", fmt.Errorf("unsupported agent kind %q (expected fixed|llm|react)", k)
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlagent.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
