// Package agent drives the model ↔ tool iteration over a block-structured
// conversation.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Axle-Bucamp/bytebot/internal/schema"
	"github.com/Axle-Bucamp/bytebot/internal/shared/llmutils"
	"github.com/Axle-Bucamp/bytebot/internal/tools"
)

// Settings holds the per-run model parameters.
type Settings struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	MaxIter      int
	SystemPrompt string
}

// Runner executes the model ↔ tool iteration loop: each assistant turn's
// tool_use blocks are executed against the registry and their results are
// appended as tool_result blocks on a user turn, until the model answers
// without tool calls or MaxIter is reached.
type Runner struct {
	provider schema.LLMProvider
	registry *tools.Registry
	settings Settings
}

// NewRunner creates a Runner.
func NewRunner(provider schema.LLMProvider, registry *tools.Registry, settings Settings) *Runner {
	if settings.MaxIter <= 0 {
		settings.MaxIter = 20
	}
	return &Runner{provider: provider, registry: registry, settings: settings}
}

// Run drives the loop over conversation until a terminal answer.
// The conversation is mutated in place so the caller keeps the history.
// Cancellation surfaces as the provider's interrupted error, unmodified.
func (r *Runner) Run(ctx context.Context, conversation *schema.Conversation, onProgress func(string)) (string, error) {
	catalog := r.registry.Specs()

	for i := 0; i < r.settings.MaxIter; i++ {
		res, err := r.provider.Complete(ctx,
			r.settings.SystemPrompt,
			*conversation,
			catalog,
			schema.NewChatOptions(r.settings.Model, r.settings.MaxTokens, r.settings.Temperature, len(catalog) > 0),
		)
		if err != nil {
			return "", err
		}

		conversation.AddAssistant(res.Blocks...)

		uses := res.ToolUses()
		if len(uses) == 0 {
			return strings.TrimSpace(llmutils.StripThink(res.Text())), nil
		}

		if onProgress != nil {
			if text := strings.TrimSpace(llmutils.StripThink(res.Text())); text != "" {
				onProgress(text)
			}
			onProgress(llmutils.ToolHint(uses))
		}

		results := make([]schema.ContentBlock, 0, len(uses))
		for _, use := range uses {
			results = append(results, r.executeToolUse(ctx, use))
		}
		conversation.AddToolResults(results...)
	}

	return "I've reached the maximum number of tool iterations without a final answer.", nil
}

// executeToolUse runs one tool_use block and wraps the outcome in a
// tool_result block. Execution failures become error-flagged text results so
// the model can react; they never abort the loop.
func (r *Runner) executeToolUse(ctx context.Context, use schema.ContentBlock) schema.ContentBlock {
	slog.Info("Tool call", "name", use.Name, "args", llmutils.Truncate(string(use.Input), 200))

	tool := r.registry.Get(use.Name)
	if tool == nil {
		return schema.NewToolResultBlock(use.ID, true,
			schema.NewTextBlock(fmt.Sprintf("Error: tool %q not found", use.Name)))
	}

	var input map[string]any
	if len(use.Input) > 0 {
		if err := json.Unmarshal(use.Input, &input); err != nil {
			return schema.NewToolResultBlock(use.ID, true,
				schema.NewTextBlock(fmt.Sprintf("Error: invalid input for %s: %v", use.Name, err)))
		}
	}

	blocks, err := tool.Execute(ctx, input)
	if err != nil {
		slog.Warn("Tool failed", "name", use.Name, "err", err)
		return schema.NewToolResultBlock(use.ID, true,
			schema.NewTextBlock("Error: "+err.Error()))
	}
	if len(blocks) == 0 {
		blocks = []schema.ContentBlock{schema.NewTextBlock("done")}
	}
	return schema.NewToolResultBlock(use.ID, false, blocks...)
}
