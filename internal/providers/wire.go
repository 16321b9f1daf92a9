package providers

import "encoding/json"

// Wire types for the OpenAI-compatible chat-completions protocol as spoken
// by the LiteLLM proxy. Content of a message is either a bare string or an
// ordered list of typed parts; the string form is used only when the part
// list collapses to a single text part (protocol size optimisation, must be
// reproduced exactly).

const (
	partText             = "text"
	partImageURL         = "image_url"
	partFunctionCall     = "function_call"
	partFunctionResponse = "function_response"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Tools       []wireTool    `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
	Stream      bool          `json:"stream"`
}

type wireMessage struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content any    `json:"content"`
}

// wirePart is one element of the array content form. Type selects which of
// the payload fields is set.
type wirePart struct {
	Type             string                `json:"type"`
	Text             string                `json:"text,omitempty"`
	ImageURL         *wireImageURL         `json:"image_url,omitempty"`
	FunctionCall     *wireFunctionCall     `json:"function_call,omitempty"`
	FunctionResponse *wireFunctionResponse `json:"function_response,omitempty"`
}

type wireImageURL struct {
	URL string `json:"url"`
}

type wireFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON-encoded argument object
}

type wireFunctionResponse struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type wireTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// chatResponse is the subset of the chat completion response we care about.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"` // string | []wirePart
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
