package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

// DoctorCheck is one health check result.
type DoctorCheck struct {
	Name   string
	OK     bool
	Detail string
}

// DoctorResult aggregates the checks of one doctor pass.
type DoctorResult struct {
	Checks []DoctorCheck
}

// Healthy reports whether every check passed.
func (r DoctorResult) Healthy() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

type Doctor struct {
	catalog   ports.ModelCatalog
	generator ports.Generator
	puller    ports.ModelPuller
}

type DoctorOption func(*Doctor)

// WithModelPuller enables pulling a missing model during the check.
func WithModelPuller(p ports.ModelPuller) DoctorOption {
	return func(uc *Doctor) {
		uc.puller = p
	}
}

func NewDoctor(mc ports.ModelCatalog, gen ports.Generator, opts ...DoctorOption) *Doctor {
	uc := &Doctor{catalog: mc, generator: gen}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// DoctorParams configures one doctor pass.
type DoctorParams struct {
	Model string
	// Pull downloads the model when it is missing and a puller is wired.
	Pull bool
	// OnPull receives download progress events.
	OnPull func(ports.PullProgress)
}

// Execute verifies the model backend end to end: the server answers, the
// model is available (optionally pulling it), and a one-word generation
// round-trips. Later checks are skipped once an earlier one fails.
func (uc *Doctor) Execute(ctx context.Context, p DoctorParams) (DoctorResult, error) {
	var result DoctorResult

	models, err := uc.catalog.Models(ctx)
	if err != nil {
		result.Checks = append(result.Checks, DoctorCheck{
			Name:   "backend reachable",
			Detail: err.Error(),
		})
		return result, nil
	}
	result.Checks = append(result.Checks, DoctorCheck{
		Name:   "backend reachable",
		OK:     true,
		Detail: fmt.Sprintf("%d models available", len(models)),
	})

	if !hasModel(models, p.Model) && p.Pull && uc.puller != nil {
		if err := uc.puller.Pull(ctx, p.Model, p.OnPull); err != nil {
			result.Checks = append(result.Checks, DoctorCheck{
				Name:   "model " + p.Model,
				Detail: "pull failed: " + err.Error(),
			})
			return result, nil
		}
		models, err = uc.catalog.Models(ctx)
		if err != nil {
			return result, err
		}
	}

	if !hasModel(models, p.Model) {
		result.Checks = append(result.Checks, DoctorCheck{
			Name:   "model " + p.Model,
			Detail: fmt.Sprintf("not found; run `ollama pull %s` or use --pull", p.Model),
		})
		return result, nil
	}
	result.Checks = append(result.Checks, DoctorCheck{
		Name:   "model " + p.Model,
		OK:     true,
		Detail: "installed",
	})

	resp, err := uc.generator.Generate(ctx, domain.GenerateRequest{
		Model:       p.Model,
		Prompt:      "Reply with the single word: ready",
		Temperature: 0,
		MaxTokens:   10,
	})
	check := DoctorCheck{Name: "generation"}
	if err != nil {
		check.Detail = err.Error()
	} else {
		check.OK = true
		check.Detail = fmt.Sprintf("replied in %dms", resp.DurationMS)
	}
	result.Checks = append(result.Checks, check)

	return result, nil
}

// hasModel matches the model name with or without a tag suffix, so
// "llama3.2" matches an installed "llama3.2:latest".
func hasModel(models []domain.ModelInfo, name string) bool {
	for _, m := range models {
		if m.Name == name {
			return true
		}
		if base, _, ok := strings.Cut(m.Name, ":"); ok && base == name {
			return true
		}
	}
	return false
}
