// Package config defines the bytebot configuration schema.
//
// JSON keys use camelCase to stay byte-compatible with config files written
// by earlier bytebot releases.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ProviderConfig holds credentials for one model endpoint.
type ProviderConfig struct {
	APIKey       string            `json:"apiKey"`
	APIBase      string            `json:"apiBase,omitempty"`
	ExtraHeaders map[string]string `json:"extraHeaders,omitempty"`
}

// ProvidersConfig holds credentials for all supported endpoints.
type ProvidersConfig struct {
	Custom     ProviderConfig `json:"custom"`
	LiteLLM    ProviderConfig `json:"litellm"`
	OpenRouter ProviderConfig `json:"openrouter"`
	OpenAI     ProviderConfig `json:"openai"`
	DeepSeek   ProviderConfig `json:"deepseek"`
	Groq       ProviderConfig `json:"groq"`
	VLLM       ProviderConfig `json:"vllm"`
}

// AgentDefaults holds default values for agent behaviour.
type AgentDefaults struct {
	Model        string  `json:"model"`
	MaxTokens    int     `json:"maxTokens"`
	Temperature  float64 `json:"temperature"`
	MaxToolIter  int     `json:"maxToolIterations"`
	SystemPrompt string  `json:"systemPrompt,omitempty"`
	PlaybooksDir string  `json:"playbooksDir,omitempty"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Model:        "litellm/gpt-4o",
		MaxTokens:    8192,
		Temperature:  0.7,
		MaxToolIter:  20,
		PlaybooksDir: "~/.bytebot/playbooks",
	}
}

// AgentsConfig wraps agent defaults.
type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults"`
}

// DesktopConfig points at the desktop daemon that executes computer actions.
type DesktopConfig struct {
	BaseURL        string `json:"baseUrl"`
	TimeoutSeconds int    `json:"timeoutSeconds,omitempty"`
}

// Config is the root configuration object.
type Config struct {
	Providers ProvidersConfig `json:"providers"`
	Agents    AgentsConfig    `json:"agents"`
	Desktop   DesktopConfig   `json:"desktop"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Agents:  AgentsConfig{Defaults: defaultAgentDefaults()},
		Desktop: DesktopConfig{BaseURL: "http://localhost:9990", TimeoutSeconds: 60},
	}
}

// ProviderByName returns the provider config for a registry name, or nil.
func (c *Config) ProviderByName(name string) *ProviderConfig {
	switch name {
	case "custom":
		return &c.Providers.Custom
	case "litellm":
		return &c.Providers.LiteLLM
	case "openrouter":
		return &c.Providers.OpenRouter
	case "openai":
		return &c.Providers.OpenAI
	case "deepseek":
		return &c.Providers.DeepSeek
	case "groq":
		return &c.Providers.Groq
	case "vllm":
		return &c.Providers.VLLM
	default:
		return nil
	}
}

// PlaybooksPath returns the playbooks directory with ~ expanded.
func (c *Config) PlaybooksPath() string {
	dir := c.Agents.Defaults.PlaybooksDir
	if dir == "" {
		dir = defaultAgentDefaults().PlaybooksDir
	}
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}
