// internal/ai/provider.go
package ai

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("generation provider not configured")

// ChatRequest is a single-turn chat completion: one system prompt and one
// user prompt, optionally with an image the model should look at.
type ChatRequest struct {
	Model       string
	System      string
	User        string
	ImageURL    string
	Temperature float64
	MaxTokens   int
}

type ChatResponse struct {
	Text             string
	Model            string
	PromptTokens     int64
	CompletionTokens int64
}

// Provider is a hosted text-generation API.
type Provider interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ProviderError carries the upstream failure for a single call.
type ProviderError struct {
	Model      string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type unconfiguredProvider struct{}

// Unconfigured returns a provider that fails every call with
// ErrNotConfigured.
func Unconfigured() Provider {
	return unconfiguredProvider{}
}

func (unconfiguredProvider) Complete(context.Context, ChatRequest) (*ChatResponse, error) {
	return nil, ErrNotConfigured
}
