package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

// OpenAIProvider talks to any OpenAI-compatible chat-completions endpoint
// (LiteLLM proxy, OpenRouter, OpenAI, self-hosted vLLM). It translates the
// internal block-structured conversation to the wire format on the way out
// and back to content blocks on the way in.
//
// The provider holds no mutable state; one instance may serve concurrent
// calls. At most one request is in flight per Complete call; retries are the
// caller's business.
type OpenAIProvider struct {
	apiKey       string
	apiBase      string
	defaultModel string
	extraHeaders map[string]string
	spec         *ProviderSpec // registry entry, nil for unknown endpoints
	httpClient   *http.Client
}

// NewOpenAIProvider constructs a provider from raw config values.
// The caller extracts these from config.Config to avoid an import cycle.
func NewOpenAIProvider(apiKey, apiBase, defaultModel, providerName string, extraHeaders map[string]string) *OpenAIProvider {
	spec := FindByName(providerName)
	if spec == nil {
		spec = FindByModel(defaultModel)
	}

	effectiveBase := apiBase
	if effectiveBase == "" {
		if spec != nil && spec.DefaultAPIBase != "" {
			effectiveBase = spec.DefaultAPIBase
		} else {
			effectiveBase = "https://api.openai.com/v1"
		}
	}
	effectiveBase = strings.TrimRight(effectiveBase, "/")

	return &OpenAIProvider{
		apiKey:       apiKey,
		apiBase:      effectiveBase,
		defaultModel: defaultModel,
		extraHeaders: extraHeaders,
		spec:         spec,
		httpClient:   &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *OpenAIProvider) DefaultModel() string { return p.defaultModel }

// Complete implements schema.LLMProvider.
//
// Cancellation of ctx surfaces as ErrInterrupted so callers can tell a
// deliberate interrupt from a transport failure.
func (p *OpenAIProvider) Complete(
	ctx context.Context,
	systemPrompt string,
	conversation schema.Conversation,
	tools []schema.ToolSpec,
	opts schema.ChatOptions,
) (schema.CompletionResult, error) {
	model := opts.Model
	if model == "" {
		model = p.defaultModel
	}
	opts.Model = p.resolveModel(model)
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 4096
	}

	body, err := buildChatRequest(systemPrompt, conversation, tools, opts)
	if err != nil {
		return schema.CompletionResult{}, fmt.Errorf("build request: %w", err)
	}
	data, err := json.Marshal(body)
	if err != nil {
		return schema.CompletionResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiBase+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return schema.CompletionResult{}, fmt.Errorf("build HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	for k, v := range p.extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return schema.CompletionResult{}, ErrInterrupted
		}
		return schema.CompletionResult{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return schema.CompletionResult{}, ErrInterrupted
		}
		return schema.CompletionResult{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return schema.CompletionResult{}, &TransportError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return parseCompletion(raw)
}

// parseCompletion decodes the wire response and converts its content back
// into content blocks.
func parseCompletion(raw []byte) (schema.CompletionResult, error) {
	var body chatResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return schema.CompletionResult{}, &MalformedResponseError{Reason: "invalid JSON body", Err: err}
	}
	if len(body.Choices) == 0 {
		return schema.CompletionResult{}, &MalformedResponseError{Reason: "response has no choices"}
	}

	blocks, err := parseChatContent(body.Choices[0].Message.Content)
	if err != nil {
		return schema.CompletionResult{}, err
	}

	finish := body.Choices[0].FinishReason
	if finish == "" {
		finish = "stop"
	}

	return schema.CompletionResult{
		Blocks: blocks,
		Usage: schema.TokenUsage{
			InputTokens:  body.Usage.PromptTokens,
			OutputTokens: body.Usage.CompletionTokens,
			TotalTokens:  body.Usage.TotalTokens,
		},
		FinishReason: finish,
	}, nil
}

// resolveModel strips a known provider prefix from the model string so the
// endpoint receives the bare model name it expects. Gateways that route on
// the prefix (LiteLLM, OpenRouter) keep it.
func (p *OpenAIProvider) resolveModel(model string) string {
	if p.spec != nil && p.spec.IsGateway && !p.spec.StripModelPrefix {
		return model
	}
	if p.spec != nil && p.spec.StripModelPrefix {
		full := p.spec.Name + "/"
		if strings.HasPrefix(strings.ToLower(model), full) {
			return model[len(full):]
		}
	}
	// Strip any other prefix recognised in the registry.
	if prefix, rest, ok := strings.Cut(model, "/"); ok && FindByName(prefix) != nil {
		return rest
	}
	return model
}
