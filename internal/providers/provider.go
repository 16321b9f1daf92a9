// Package providers implements the translation between the internal
// block-structured conversation model and the OpenAI-compatible
// chat-completions wire format, plus the HTTP facade that speaks it.
package providers

import "github.com/Axle-Bucamp/bytebot/internal/schema"

// Params are the raw values needed to construct a schema.LLMProvider.
// Extracted from config.Config by the caller to avoid an import cycle.
type Params struct {
	APIKey       string
	APIBase      string
	ExtraHeaders map[string]string
	DefaultModel string
	ProviderName string // registry name, e.g. "litellm", "openrouter"
}

// New creates the schema.LLMProvider for the given params. Every supported
// endpoint speaks the OpenAI-compatible protocol, so there is a single
// implementation; the registry entry only tunes base URL and model prefixing.
func New(p Params) schema.LLMProvider {
	return NewOpenAIProvider(p.APIKey, p.APIBase, p.DefaultModel, p.ProviderName, p.ExtraHeaders)
}
