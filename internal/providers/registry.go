package providers

import "strings"

// ProviderSpec is the metadata record for one OpenAI-compatible endpoint.
type ProviderSpec struct {
	Name        string   // config field name, e.g. "openrouter"
	Keywords    []string // model-name keywords for matching (lowercase)
	DisplayName string   // shown in `bytebot status`

	IsGateway      bool   // routes any model (LiteLLM proxy, OpenRouter)
	IsLocal        bool   // local deployment (vLLM)
	DefaultAPIBase string // fallback base URL when none is configured

	// StripModelPrefix strips "provider/" from the model before sending;
	// gateways that route on the prefix keep it.
	StripModelPrefix bool
}

// Label returns the display name, defaulting to Title-cased Name.
func (s ProviderSpec) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

// PROVIDERS is the endpoint registry. Order = match priority.
var PROVIDERS = []ProviderSpec{
	{
		Name:        "custom",
		DisplayName: "Custom",
	},
	{
		Name:           "litellm",
		Keywords:       []string{"litellm"},
		DisplayName:    "LiteLLM Proxy",
		IsGateway:      true,
		IsLocal:        true,
		DefaultAPIBase: "http://localhost:4000",
	},
	{
		Name:           "openrouter",
		Keywords:       []string{"openrouter"},
		DisplayName:    "OpenRouter",
		IsGateway:      true,
		DefaultAPIBase: "https://openrouter.ai/api/v1",
	},
	{
		Name:             "openai",
		Keywords:         []string{"gpt", "o1", "o3", "o4"},
		DisplayName:      "OpenAI",
		DefaultAPIBase:   "https://api.openai.com/v1",
		StripModelPrefix: true,
	},
	{
		Name:             "deepseek",
		Keywords:         []string{"deepseek"},
		DisplayName:      "DeepSeek",
		DefaultAPIBase:   "https://api.deepseek.com/v1",
		StripModelPrefix: true,
	},
	{
		Name:             "groq",
		Keywords:         []string{"groq"},
		DisplayName:      "Groq",
		DefaultAPIBase:   "https://api.groq.com/openai/v1",
		StripModelPrefix: true,
	},
	{
		Name:        "vllm",
		Keywords:    []string{"vllm"},
		DisplayName: "vLLM",
		IsLocal:     true,
	},
}

// FindByName returns the spec with the given registry name, or nil.
func FindByName(name string) *ProviderSpec {
	name = strings.ToLower(strings.ReplaceAll(name, "-", "_"))
	for i := range PROVIDERS {
		if PROVIDERS[i].Name == name {
			return &PROVIDERS[i]
		}
	}
	return nil
}

// FindByModel returns the first spec whose keywords match the model name, or nil.
func FindByModel(model string) *ProviderSpec {
	modelLower := strings.ToLower(model)
	for i := range PROVIDERS {
		for _, kw := range PROVIDERS[i].Keywords {
			if strings.Contains(modelLower, kw) {
				return &PROVIDERS[i]
			}
		}
	}
	return nil
}
