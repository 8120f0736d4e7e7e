package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

type fakeCatalog struct {
	models []domain.ModelInfo
	err    error
}

func (f *fakeCatalog) Models(ctx context.Context) ([]domain.ModelInfo, error) {
	return f.models, f.err
}

type fakeDoctorGen struct {
	text string
	err  error
}

func (f *fakeDoctorGen) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResponse, error) {
	if f.err != nil {
		return domain.GenerateResponse{}, f.err
	}
	return domain.GenerateResponse{Text: f.text, DurationMS: 12}, nil
}

type fakePuller struct {
	err     error
	pulled  string
	catalog *fakeCatalog
}

func (f *fakePuller) Pull(ctx context.Context, model string, onProgress func(ports.PullProgress)) error {
	f.pulled = model
	if f.err != nil {
		return f.err
	}
	// Pull makes the model appear in the catalog.
	f.catalog.models = append(f.catalog.models, domain.ModelInfo{Name: model})
	return nil
}

func TestDoctorHealthy(t *testing.T) {
	catalog := &fakeCatalog{models: []domain.ModelInfo{{Name: "llama3.2:latest"}}}
	uc := NewDoctor(catalog, &fakeDoctorGen{text: "ready"})

	result, err := uc.Execute(context.Background(), DoctorParams{Model: "llama3.2"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Healthy() {
		t.Fatalf("expected healthy, got %+v", result.Checks)
	}
	if len(result.Checks) != 3 {
		t.Errorf("checks = %d, want 3", len(result.Checks))
	}
}

func TestDoctorBackendUnreachable(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	uc := NewDoctor(catalog, &fakeDoctorGen{})

	result, err := uc.Execute(context.Background(), DoctorParams{Model: "llama3.2"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Healthy() {
		t.Fatal("expected unhealthy")
	}
	if len(result.Checks) != 1 {
		t.Errorf("later checks must be skipped, got %+v", result.Checks)
	}
}

func TestDoctorMissingModel(t *testing.T) {
	catalog := &fakeCatalog{models: []domain.ModelInfo{{Name: "mistral:latest"}}}
	uc := NewDoctor(catalog, &fakeDoctorGen{})

	result, err := uc.Execute(context.Background(), DoctorParams{Model: "llama3.2"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Healthy() {
		t.Fatal("expected unhealthy")
	}
	if len(result.Checks) != 2 {
		t.Errorf("generation must be skipped, got %+v", result.Checks)
	}
}

func TestDoctorPullsMissingModel(t *testing.T) {
	catalog := &fakeCatalog{}
	puller := &fakePuller{catalog: catalog}
	uc := NewDoctor(catalog, &fakeDoctorGen{text: "ready"}, WithModelPuller(puller))

	result, err := uc.Execute(context.Background(), DoctorParams{Model: "llama3.2", Pull: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if puller.pulled != "llama3.2" {
		t.Errorf("pulled %q", puller.pulled)
	}
	if !result.Healthy() {
		t.Errorf("expected healthy after pull, got %+v", result.Checks)
	}
}

func TestDoctorGenerationFails(t *testing.T) {
	catalog := &fakeCatalog{models: []domain.ModelInfo{{Name: "llama3.2"}}}
	uc := NewDoctor(catalog, &fakeDoctorGen{err: errors.New("timeout")})

	result, err := uc.Execute(context.Background(), DoctorParams{Model: "llama3.2"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Healthy() {
		t.Fatal("expected unhealthy")
	}
	last := result.Checks[len(result.Checks)-1]
	if last.Name != "generation" || last.OK {
		t.Errorf("last check = %+v", last)
	}
}
