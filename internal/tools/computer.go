package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

// DesktopClient talks to the desktop daemon that executes computer actions
// (mouse, keyboard, screen capture) on behalf of the agent.
type DesktopClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDesktopClient creates a client for the daemon at baseURL.
func NewDesktopClient(baseURL string, timeoutSeconds int) *DesktopClient {
	t := 60
	if timeoutSeconds > 0 {
		t = timeoutSeconds
	}
	return &DesktopClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(t) * time.Second},
	}
}

// actionResult is the daemon's reply to one computer action.
type actionResult struct {
	Output string `json:"output,omitempty"`
	Image  *struct {
		MediaType string `json:"mediaType"`
		Data      string `json:"data"` // base64
	} `json:"image,omitempty"`
}

// Action posts one computer action to the daemon and returns its result.
func (c *DesktopClient) Action(ctx context.Context, action string, params map[string]any) (*actionResult, error) {
	payload := map[string]any{"action": action}
	for k, v := range params {
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal action %s: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/computer-use", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("desktop daemon: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read daemon response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("desktop daemon HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var result actionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse daemon response: %w", err)
	}
	return &result, nil
}

// ComputerTool is one desktop action exposed to the model. All built-in
// tools share a DesktopClient and differ only in name, schema, and action.
type ComputerTool struct {
	name        string
	description string
	schema      json.RawMessage
	action      string
	client      *DesktopClient
}

func (t *ComputerTool) Name() string                { return t.name }
func (t *ComputerTool) Description() string         { return t.description }
func (t *ComputerTool) Parameters() json.RawMessage { return t.schema }

// Execute runs the action on the desktop daemon and converts its result to
// content blocks: the captured image if any, plus the textual output.
func (t *ComputerTool) Execute(ctx context.Context, input map[string]any) ([]schema.ContentBlock, error) {
	res, err := t.client.Action(ctx, t.action, input)
	if err != nil {
		return nil, err
	}

	var blocks []schema.ContentBlock
	if res.Image != nil {
		blocks = append(blocks, schema.NewImageBlock(res.Image.MediaType, res.Image.Data))
	}
	if res.Output != "" {
		blocks = append(blocks, schema.NewTextBlock(res.Output))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, schema.NewTextBlock("done"))
	}
	return blocks, nil
}

// NewDesktopRegistry builds the registry of built-in computer-use tools.
func NewDesktopRegistry(client *DesktopClient) *Registry {
	r := NewRegistry()
	for _, t := range builtinComputerTools(client) {
		r.Register(t)
	}
	return r
}

func builtinComputerTools(client *DesktopClient) []schema.Tool {
	return []schema.Tool{
		&ComputerTool{
			name:        "screenshot",
			description: "Capture a screenshot of the current screen.",
			action:      "screenshot",
			client:      client,
			schema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},
		&ComputerTool{
			name:        "click_mouse",
			description: "Click the mouse at the given screen coordinates.",
			action:      "click_mouse",
			client:      client,
			schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"x": {"type": "integer", "description": "X coordinate in pixels"},
					"y": {"type": "integer", "description": "Y coordinate in pixels"},
					"button": {"type": "string", "enum": ["left", "right", "middle"], "description": "Mouse button (default left)"}
				},
				"required": ["x", "y"]
			}`),
		},
		&ComputerTool{
			name:        "move_mouse",
			description: "Move the mouse cursor to the given screen coordinates without clicking.",
			action:      "move_mouse",
			client:      client,
			schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"x": {"type": "integer", "description": "X coordinate in pixels"},
					"y": {"type": "integer", "description": "Y coordinate in pixels"}
				},
				"required": ["x", "y"]
			}`),
		},
		&ComputerTool{
			name:        "type_text",
			description: "Type text using the keyboard.",
			action:      "type_text",
			client:      client,
			schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"text": {"type": "string", "description": "The text to type"}
				},
				"required": ["text"]
			}`),
		},
		&ComputerTool{
			name:        "press_keys",
			description: "Press one or more keys, optionally as a combination (e.g. ctrl+c).",
			action:      "press_keys",
			client:      client,
			schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"keys": {"type": "array", "items": {"type": "string"}, "description": "Keys to press together"}
				},
				"required": ["keys"]
			}`),
		},
	}
}
