package domain

// WorkspaceSpec describes a workspace to initialize on disk.
type WorkspaceSpec struct {
	Root string
}
