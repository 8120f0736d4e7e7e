package ports

import "github.com/erinmikailstaples/Agent-Adventures/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
