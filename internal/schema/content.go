// Package schema defines the typed content-block model shared across the
// agent, provider, and tool layers, plus the interfaces that connect them.
package schema

import "encoding/json"

// BlockType discriminates the content-block variants.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockImage      BlockType = "image"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
	BlockUserAction BlockType = "user_action"
)

// ContentBlock is one typed unit of message content. Type selects which
// fields are meaningful; the rest stay at their zero values.
//
//   - text:        Text
//   - image:       MediaType, Data (base64 payload)
//   - tool_use:    ID, Name, Input
//   - tool_result: ToolUseID, IsError, Content
//   - user_action: Content (nested tool_use and image blocks)
type ContentBlock struct {
	Type BlockType `json:"type"`

	// text
	Text string `json:"text,omitempty"`

	// image
	MediaType string `json:"media_type,omitempty"`
	Data      string `json:"data,omitempty"`

	// tool_use
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result
	ToolUseID string         `json:"tool_use_id,omitempty"`
	IsError   bool           `json:"is_error,omitempty"`
	Content   []ContentBlock `json:"content,omitempty"`
}

// NewTextBlock returns a text block.
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

// NewImageBlock returns an image block carrying a base64 payload.
func NewImageBlock(mediaType, data string) ContentBlock {
	return ContentBlock{Type: BlockImage, MediaType: mediaType, Data: data}
}

// NewToolUseBlock returns a tool_use block.
func NewToolUseBlock(id, name string, input json.RawMessage) ContentBlock {
	return ContentBlock{Type: BlockToolUse, ID: id, Name: name, Input: input}
}

// NewToolResultBlock returns a tool_result block answering the tool_use
// identified by toolUseID.
func NewToolResultBlock(toolUseID string, isError bool, content ...ContentBlock) ContentBlock {
	return ContentBlock{Type: BlockToolResult, ToolUseID: toolUseID, IsError: isError, Content: content}
}

// NewUserActionBlock returns a user_action block wrapping the actions the
// user performed manually (nested tool_use blocks, optionally with images).
func NewUserActionBlock(content ...ContentBlock) ContentBlock {
	return ContentBlock{Type: BlockUserAction, Content: content}
}
