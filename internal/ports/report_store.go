package ports

import "github.com/erinmikailstaples/Agent-Adventures/internal/domain"

// ReportStore persists run artifacts for reproducibility.
type ReportStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
}
