package ports

import "github.com/erinmikailstaples/Agent-Adventures/internal/domain"

// GuideLoader loads guide documents from a source (e.g., filesystem).
type GuideLoader interface {
	LoadDocument(path string) (domain.Document, error)
	ListDocuments(guideRoot string) ([]domain.DocumentRef, error)
}
