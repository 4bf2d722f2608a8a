// Package llm drives the "ask a model" half of every stage generator: given
// a built Prompt, call the right provider, capture timing/cost, and apply
// the shared prior-output reuse rule from internal/expe's step machine.
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// ModelConfig carries the per-call knobs a Provider.Complete implementation
// reads.
type ModelConfig struct {
	Temperature float64
	MaxTokens   int
}

// DefaultModelConfig is the baseline temperature/token budget used when a
// pipeline config doesn't override it. Temperature 0 keeps reruns of the
// same prompt as reproducible as the providers allow.
var DefaultModelConfig = ModelConfig{Temperature: 0, MaxTokens: 2000}

// Provider is one LLM backend. A single Provider instance may serve several
// model names (SupportsModel decides which).
type Provider interface {
	Name() string
	SupportsModel(modelName string) bool
	Configure(apiKey string) error
	// Complete sends prompt to modelName and returns the raw completion text,
	// plus the estimated USD cost of the call (0 if unknown).
	Complete(ctx context.Context, modelName string, prompt expe.Prompt, cfg ModelConfig) (text string, cost float64, err error)
}

// Registry resolves a model name (e.g. "gpt-4o", "claude-3-5-sonnet",
// "anthropic.claude-3-5-sonnet-20241022-v2:0", "gemini-1.5-pro") to the
// Provider that serves it, by family prefix. It also holds the optional
// per-model concurrency limits: bounding in-flight calls is a property of
// the model being called, not of the stage calling it, so the limit lives
// here rather than on the stage generators.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	limits    map[string]chan struct{}
}

// NewRegistry returns an empty registry; callers Register providers into it.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds p to the registry. Providers are tried in registration
// order, so register more specific providers first if prefixes ever overlap.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, p)
}

// Resolve returns the first registered Provider whose SupportsModel accepts
// modelName.
func (r *Registry) Resolve(modelName string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.providers {
		if p.SupportsModel(modelName) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("llm: no provider registered for model %q", modelName)
}

// SetModelConcurrency caps the number of in-flight Complete calls for
// modelName at n. Unlimited when never set or n <= 0.
func (r *Registry) SetModelConcurrency(modelName string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 {
		delete(r.limits, modelName)
		return
	}
	if r.limits == nil {
		r.limits = map[string]chan struct{}{}
	}
	r.limits[modelName] = make(chan struct{}, n)
}

// acquire takes a concurrency slot for modelName, returning the release
// function. A model with no configured limit gets a no-op release.
func (r *Registry) acquire(modelName string) func() {
	r.mu.RLock()
	sem := r.limits[modelName]
	r.mu.RUnlock()
	if sem == nil {
		return func() {}
	}
	sem <- struct{}{}
	return func() { <-sem }
}

// FullName returns "<provider>/<model>", the canonical identifier stored in
// LLMAnswer.FullName and matched, alongside the short name, against the eval
// stage's only_llms filter.
func FullName(provider Provider, modelName string) string {
	return provider.Name() + "/" + modelName
}

// hasPrefixFold reports whether s starts with prefix, ignoring case — every
// SupportsModel implementation below uses this for its family check.
func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}
