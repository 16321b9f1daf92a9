package providers

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

// parseChatContent converts the response message content (bare string or
// part list) back into content blocks.
//
// Unknown part shapes degrade to a JSON text block with a warning — the
// parser must keep working when the endpoint grows new part types. Invalid
// function-call arguments are a hard error: a tool call the agent cannot
// decode is unusable.
func parseChatContent(content json.RawMessage) ([]schema.ContentBlock, error) {
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var text string
	if err := json.Unmarshal(content, &text); err == nil {
		return []schema.ContentBlock{schema.NewTextBlock(text)}, nil
	}

	// Parts are decoded individually from raw JSON so an unknown part keeps
	// its full payload when it degrades to text.
	var rawParts []json.RawMessage
	if err := json.Unmarshal(content, &rawParts); err != nil {
		return nil, &MalformedResponseError{Reason: "content is neither string nor part list", Err: err}
	}

	var blocks []schema.ContentBlock
	for _, raw := range rawParts {
		var part wirePart
		if err := json.Unmarshal(raw, &part); err != nil {
			return nil, &MalformedResponseError{Reason: "content part is not an object", Err: err}
		}

		switch {
		case part.Type == partText:
			if part.Text != "" {
				blocks = append(blocks, schema.NewTextBlock(part.Text))
			}

		case part.Type == partFunctionCall && part.FunctionCall != nil:
			block, err := toolUseBlock(*part.FunctionCall)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)

		default:
			slog.Warn("unrecognised content part", "type", part.Type)
			blocks = append(blocks, schema.NewTextBlock(string(raw)))
		}
	}
	return blocks, nil
}

// toolUseBlock converts a function_call part into a tool_use block with a
// freshly generated identifier. Identifiers are regenerated on every parse;
// only name and input carry over the wire.
func toolUseBlock(call wireFunctionCall) (schema.ContentBlock, error) {
	args := strings.TrimSpace(call.Arguments)
	if args == "" {
		args = "{}"
	}
	var input json.RawMessage
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return schema.ContentBlock{}, &MalformedResponseError{
			Reason: "function call " + call.Name + " has invalid arguments",
			Err:    err,
		}
	}
	return schema.NewToolUseBlock(uuid.NewString(), call.Name, input), nil
}
