// Package dependency wires core bytebot services using go.uber.org/dig.
package dependency

import (
	"fmt"
	"strings"

	"go.uber.org/dig"

	"github.com/Axle-Bucamp/bytebot/internal/agent"
	"github.com/Axle-Bucamp/bytebot/internal/config"
	"github.com/Axle-Bucamp/bytebot/internal/providers"
	"github.com/Axle-Bucamp/bytebot/internal/schema"
	"github.com/Axle-Bucamp/bytebot/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider  schema.LLMProvider
	registry  *tools.Registry
	desktop   *tools.DesktopClient
	runner    *agent.Runner
	playbooks *agent.PlaybookLoader
}

func (c *Container) Provider() schema.LLMProvider    { return c.provider }
func (c *Container) Registry() *tools.Registry       { return c.registry }
func (c *Container) Desktop() *tools.DesktopClient   { return c.desktop }
func (c *Container) Runner() *agent.Runner           { return c.runner }
func (c *Container) Playbooks() *agent.PlaybookLoader { return c.playbooks }

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(newDesktopClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newToolRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newPlaybookLoader); err != nil {
		return nil, err
	}
	if err := d.Provide(newRunner); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.LLMProvider,
		registry *tools.Registry,
		desktop *tools.DesktopClient,
		runner *agent.Runner,
		playbooks *agent.PlaybookLoader,
	) {
		result = &Container{
			provider:  provider,
			registry:  registry,
			desktop:   desktop,
			runner:    runner,
			playbooks: playbooks,
		}
	})
	return result, err
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
	model := cfg.Agents.Defaults.Model
	result := cfg.MatchProvider(model)

	if result.Provider == nil {
		return nil, fmt.Errorf("no provider configured for model %q — edit %s", model, config.ConfigPath())
	}

	return providers.New(providers.Params{
		APIKey:       result.Provider.APIKey,
		APIBase:      cfg.GetAPIBase(model),
		ExtraHeaders: result.Provider.ExtraHeaders,
		DefaultModel: model,
		ProviderName: result.Name,
	}), nil
}

func newDesktopClient(cfg *config.Config) *tools.DesktopClient {
	return tools.NewDesktopClient(cfg.Desktop.BaseURL, cfg.Desktop.TimeoutSeconds)
}

func newToolRegistry(client *tools.DesktopClient) *tools.Registry {
	return tools.NewDesktopRegistry(client)
}

func newPlaybookLoader(cfg *config.Config) *agent.PlaybookLoader {
	return agent.NewPlaybookLoader(cfg.PlaybooksPath())
}

func newRunner(
	provider schema.LLMProvider,
	registry *tools.Registry,
	playbooks *agent.PlaybookLoader,
	cfg *config.Config,
) *agent.Runner {
	prompt := cfg.Agents.Defaults.SystemPrompt
	if section := playbooks.SystemPromptSection(); section != "" {
		prompt = strings.TrimSpace(prompt + "\n\n" + section)
	}
	return agent.NewRunner(provider, registry, agent.Settings{
		Model:        cfg.Agents.Defaults.Model,
		MaxTokens:    cfg.Agents.Defaults.MaxTokens,
		Temperature:  cfg.Agents.Defaults.Temperature,
		MaxIter:      cfg.Agents.Defaults.MaxToolIter,
		SystemPrompt: prompt,
	})
}
