package schema

import (
	"context"
	"strings"
)

// ChatOptions configures a single chat completion request.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
	UseTools    bool
}

func NewChatOptions(model string, maxTokens int, temperature float64, useTools bool) ChatOptions {
	return ChatOptions{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		UseTools:    useTools,
	}
}

// TokenUsage reports token consumption for one completion.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// CompletionResult is the normalised outcome of one chat completion:
// the model's reply converted back into content blocks, plus usage.
type CompletionResult struct {
	Blocks       []ContentBlock
	Usage        TokenUsage
	FinishReason string
}

// ToolUses returns the tool_use blocks of the result, in order.
func (r CompletionResult) ToolUses() []ContentBlock {
	var uses []ContentBlock
	for _, b := range r.Blocks {
		if b.Type == BlockToolUse {
			uses = append(uses, b)
		}
	}
	return uses
}

// Text returns the concatenated text blocks of the result.
func (r CompletionResult) Text() string {
	var sb strings.Builder
	for _, b := range r.Blocks {
		if b.Type == BlockText {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}

// LLMProvider is the interface every model backend must satisfy.
// The conversation and tool catalog are read-only inputs; implementations
// must not mutate them.
type LLMProvider interface {
	Complete(ctx context.Context, systemPrompt string, conversation Conversation, tools []ToolSpec, opts ChatOptions) (CompletionResult, error)
	DefaultModel() string
}
