package providers

import "github.com/Axle-Bucamp/bytebot/internal/schema"

// unknownToolName is the fallback function-response name when a tool-result
// block references a tool-use identifier that cannot be found in history.
const unknownToolName = "unknown_tool"

// wireTools converts the tool catalog into the wire function-schema shape.
// The input schema is passed through structurally unchanged.
func wireTools(specs []schema.ToolSpec) []wireTool {
	out := make([]wireTool, 0, len(specs))
	for _, s := range specs {
		out = append(out, wireTool{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  s.InputSchema,
		})
	}
	return out
}

// resolveToolName finds the tool_use block with the given identifier anywhere
// in the conversation and returns its name. Tool results may be separated
// from their originating call by intervening messages, so the whole history
// is scanned, not just the preceding message. A miss is not an error; the
// caller falls back to unknownToolName.
func resolveToolName(toolUseID string, conversation schema.Conversation) (string, bool) {
	for _, msg := range conversation.Messages {
		for _, block := range msg.Content {
			if block.Type == schema.BlockToolUse && block.ID == toolUseID {
				return block.Name, true
			}
		}
	}
	return "", false
}
