package ports

import "github.com/erinmikailstaples/Agent-Adventures/internal/domain"

// AgentLoader loads agent specs from a source (e.g., filesystem).
type AgentLoader interface {
	LoadAgent(path string) (domain.AgentSpec, error)
	ListAgents(root string) ([]domain.AgentRef, error)
}
