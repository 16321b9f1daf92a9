package providers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

// Fixed name and content of the synthetic function_response emitted before an
// image tool result. The model recognises the pair as a completed screenshot.
const (
	screenshotToolName = "screenshot"
	screenshotResponse = "screenshot successful"
)

// buildChatRequest flattens a system prompt plus conversation history into
// the wire message list and attaches the tool catalog when requested.
func buildChatRequest(systemPrompt string, conversation schema.Conversation, tools []schema.ToolSpec, opts schema.ChatOptions) (chatRequest, error) {
	var messages []wireMessage

	if systemPrompt != "" {
		messages = append(messages, wireMessage{Role: "system", Content: systemPrompt})
	}

	for _, msg := range conversation.Messages {
		wm, err := renderMessage(msg, conversation)
		if err != nil {
			return chatRequest{}, err
		}
		messages = append(messages, wm)
	}

	req := chatRequest{
		Model:       opts.Model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Stream:      false,
	}
	if opts.UseTools && len(tools) > 0 {
		req.Tools = wireTools(tools)
		req.ToolChoice = "auto"
	}
	return req, nil
}

// renderMessage converts one conversation message to a wire message.
// conversation is the full history, needed to resolve tool-result names.
func renderMessage(msg schema.Message, conversation schema.Conversation) (wireMessage, error) {
	var (
		parts []wirePart
		err   error
	)
	if allUserAction(msg.Content) {
		parts, err = flattenUserActions(msg.Content)
	} else {
		for _, block := range msg.Content {
			var rendered []wirePart
			rendered, err = renderBlock(block, conversation)
			if err != nil {
				break
			}
			parts = append(parts, rendered...)
		}
	}
	if err != nil {
		return wireMessage{}, err
	}

	role := "assistant"
	if msg.Role == schema.RoleUser {
		role = "user"
	}
	return wireMessage{Role: role, Content: collapseContent(parts)}, nil
}

// allUserAction reports whether every block of the message is a user_action.
// Mixed content is never produced upstream and is rendered block-by-block.
func allUserAction(blocks []schema.ContentBlock) bool {
	if len(blocks) == 0 {
		return false
	}
	for _, b := range blocks {
		if b.Type != schema.BlockUserAction {
			return false
		}
	}
	return true
}

// flattenUserActions merges the nested blocks of every user_action wrapper
// into one parts list, in original order. Nested tool uses become descriptive
// text so the model sees the action as user activity, not its own output.
func flattenUserActions(blocks []schema.ContentBlock) ([]wirePart, error) {
	var parts []wirePart
	for _, action := range blocks {
		for _, nested := range action.Content {
			switch nested.Type {
			case schema.BlockToolUse:
				parts = append(parts, wirePart{
					Type: partText,
					Text: fmt.Sprintf("User performed action: %s\n%s", nested.Name, prettyJSON(nested.Input)),
				})
			case schema.BlockImage:
				parts = append(parts, imagePart(nested))
			default:
				parts = append(parts, fallbackTextPart(nested))
			}
		}
	}
	return parts, nil
}

// renderBlock converts one content block to its wire parts.
func renderBlock(block schema.ContentBlock, conversation schema.Conversation) ([]wirePart, error) {
	switch block.Type {
	case schema.BlockText:
		return []wirePart{{Type: partText, Text: block.Text}}, nil

	case schema.BlockToolUse:
		args := string(block.Input)
		if args == "" {
			args = "{}"
		}
		return []wirePart{{
			Type:         partFunctionCall,
			FunctionCall: &wireFunctionCall{Name: block.Name, Arguments: args},
		}}, nil

	case schema.BlockImage:
		return []wirePart{imagePart(block)}, nil

	case schema.BlockToolResult:
		return renderToolResult(block, conversation)

	default:
		// Unknown block kinds degrade to their JSON form; this path must
		// never fail.
		return []wirePart{fallbackTextPart(block)}, nil
	}
}

// renderToolResult converts a tool_result block. Only the first element of
// the result content is inspected: an image yields the screenshot sentinel
// followed by the image itself; anything else is serialised into a
// function_response named after the originating tool use. The is_error flag
// deliberately does not change the serialisation.
//
// A tool_result with empty content violates the upstream contract.
func renderToolResult(block schema.ContentBlock, conversation schema.Conversation) ([]wirePart, error) {
	if len(block.Content) == 0 {
		return nil, fmt.Errorf("tool result %s has no content", block.ToolUseID)
	}
	first := block.Content[0]

	if first.Type == schema.BlockImage {
		return []wirePart{
			{
				Type:             partFunctionResponse,
				FunctionResponse: &wireFunctionResponse{Name: screenshotToolName, Content: screenshotResponse},
			},
			imagePart(first),
		}, nil
	}

	name, ok := resolveToolName(block.ToolUseID, conversation)
	if !ok {
		name = unknownToolName
	}
	payload, err := json.Marshal(first)
	if err != nil {
		return nil, fmt.Errorf("serialise tool result %s: %w", block.ToolUseID, err)
	}
	return []wirePart{{
		Type:             partFunctionResponse,
		FunctionResponse: &wireFunctionResponse{Name: name, Content: string(payload)},
	}}, nil
}

// collapseContent applies the protocol's content-shape rule: exactly one
// text part collapses to a bare string, everything else keeps the array form.
func collapseContent(parts []wirePart) any {
	if len(parts) == 1 && parts[0].Type == partText {
		return parts[0].Text
	}
	return parts
}

func imagePart(block schema.ContentBlock) wirePart {
	return wirePart{
		Type:     partImageURL,
		ImageURL: &wireImageURL{URL: fmt.Sprintf("data:%s;base64,%s", block.MediaType, block.Data)},
	}
}

// fallbackTextPart wraps an unrecognised block as JSON text. Marshal errors
// are swallowed: the fallback path may not throw.
func fallbackTextPart(block schema.ContentBlock) wirePart {
	data, err := json.Marshal(block)
	if err != nil {
		return wirePart{Type: partText, Text: string(block.Type)}
	}
	return wirePart{Type: partText, Text: string(data)}
}

// prettyJSON indents a raw JSON value for human-readable action descriptions.
func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
