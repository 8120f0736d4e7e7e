package domain

// GenerateRequest is a single prompt sent to a text generator.
type GenerateRequest struct {
	Model  string
	System string
	Prompt string

	Temperature float64
	TopP        float64
	// MaxTokens bounds the reply length (maps to num_predict for Ollama).
	MaxTokens int
}

// GenerateResponse is the generator's reply.
type GenerateResponse struct {
	Text string
	// DurationMS is the total server-side generation time when reported.
	DurationMS int64
}

// ModelInfo describes one model available on the generator backend.
type ModelInfo struct {
	Name      string
	SizeBytes int64
}
