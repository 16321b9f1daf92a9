package config

import (
	"strings"

	"github.com/Axle-Bucamp/bytebot/internal/providers"
)

// MatchResult is the resolved provider config and registry name for a model.
type MatchResult struct {
	Provider *ProviderConfig
	Name     string // e.g. "litellm", "openrouter"
}

// MatchProvider resolves which provider config and registry entry to use for
// model. If model is empty, the default model is used.
//
// Priority order:
//  1. Explicit provider prefix in the model string (e.g. "deepseek/deepseek-chat")
//  2. Keyword match in the model name (registry order)
//  3. Fallback: first configured provider in registry order
func (c *Config) MatchProvider(model string) MatchResult {
	if model == "" {
		model = c.Agents.Defaults.Model
	}
	modelLower := strings.ToLower(model)
	modelPrefix, _, _ := strings.Cut(modelLower, "/")

	// 1. Explicit provider prefix wins.
	for _, spec := range providers.PROVIDERS {
		p := c.ProviderByName(spec.Name)
		if p == nil {
			continue
		}
		if modelPrefix != "" && modelPrefix == spec.Name && c.configured(spec, p) {
			return MatchResult{Provider: p, Name: spec.Name}
		}
	}

	// 2. Keyword match.
	for _, spec := range providers.PROVIDERS {
		p := c.ProviderByName(spec.Name)
		if p == nil {
			continue
		}
		for _, kw := range spec.Keywords {
			if strings.Contains(modelLower, kw) && c.configured(spec, p) {
				return MatchResult{Provider: p, Name: spec.Name}
			}
		}
	}

	// 3. Fallback: first configured provider.
	for _, spec := range providers.PROVIDERS {
		p := c.ProviderByName(spec.Name)
		if p != nil && c.configured(spec, p) {
			return MatchResult{Provider: p, Name: spec.Name}
		}
	}

	return MatchResult{}
}

// configured reports whether a provider entry is usable: local endpoints need
// only a base URL (or a registry default), everything else needs an API key.
func (c *Config) configured(spec providers.ProviderSpec, p *ProviderConfig) bool {
	if spec.IsLocal {
		return p.APIBase != "" || spec.DefaultAPIBase != ""
	}
	return p.APIKey != ""
}

// GetAPIBase resolves the effective API base URL for model.
// Precedence: user-configured apiBase > registry default for the entry.
func (c *Config) GetAPIBase(model string) string {
	result := c.MatchProvider(model)
	if result.Provider != nil && result.Provider.APIBase != "" {
		return result.Provider.APIBase
	}
	if result.Name != "" {
		if spec := providers.FindByName(result.Name); spec != nil {
			return spec.DefaultAPIBase
		}
	}
	return ""
}

// GetProviderName returns the registry name of the matched provider (or "").
func (c *Config) GetProviderName(model string) string {
	return c.MatchProvider(model).Name
}
