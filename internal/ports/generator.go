package ports

import (
	"context"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

// Generator produces text from a prompt via a model backend.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResponse, error)
}

// ModelCatalog enumerates the models loaded on the generator backend.
type ModelCatalog interface {
	Models(ctx context.Context) ([]domain.ModelInfo, error)
}

// PullProgress reports one progress event during a model pull.
type PullProgress struct {
	Status    string
	Total     int64
	Completed int64
}

// ModelPuller downloads a model onto the generator backend.
type ModelPuller interface {
	Pull(ctx context.Context, model string, onProgress func(PullProgress)) error
}
