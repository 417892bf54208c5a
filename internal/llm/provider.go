package llm

import (
	"context"
	"errors"
)

// ErrAllProvidersFailed is surfaced when every provider in the pool is
// unavailable or erroring. Distinct from a quality-filter fallback.
var ErrAllProvidersFailed = errors.New("all llm providers failed")

// GenerateRequest is one generation call.
type GenerateRequest struct {
	// Prompt is the fully built prompt, including the citation
	// allowlist and output contract.
	Prompt string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls sampling; zero keeps answers reproducible.
	Temperature float32
}

// GenerateResponse is a provider's raw output.
type GenerateResponse struct {
	Content    string
	Model      string
	TokensUsed int
	Raw        map[string]interface{}
}

// Provider defines the interface for LLM providers. All providers in
// the pool speak the same contract; selection and failover live in Pool.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces text for a fully built prompt
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}
