package schema

import (
	"context"
	"encoding/json"
)

// ToolSpec describes one callable tool exposed to the model.
// InputSchema is the JSON Schema for the tool's parameters, passed to the
// provider verbatim.
type ToolSpec struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Tool is the interface all model-callable tools must satisfy.
// Execute returns the result as content blocks so tools can produce text,
// screenshots, or both.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, input map[string]any) ([]ContentBlock, error)
}

// SpecOf builds the ToolSpec for a tool.
func SpecOf(t Tool) ToolSpec {
	return ToolSpec{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: t.Parameters(),
	}
}
