package providers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

func mustParts(t *testing.T, content any) []wirePart {
	t.Helper()
	parts, ok := content.([]wirePart)
	if !ok {
		t.Fatalf("expected part list content, got %T", content)
	}
	return parts
}

func defaultOpts() schema.ChatOptions {
	return schema.ChatOptions{Model: "gpt-4o", MaxTokens: 2048, Temperature: 0.7}
}

func TestBuildChatRequest_SystemPromptFirst(t *testing.T) {
	conv := schema.NewConversation()
	conv.AddUser(schema.NewTextBlock("hi"))

	req, err := buildChatRequest("be helpful", conv, nil, defaultOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Errorf("expected leading system message, got role %q", req.Messages[0].Role)
	}
	if req.Messages[0].Content != "be helpful" {
		t.Errorf("system content = %v, want %q", req.Messages[0].Content, "be helpful")
	}
}

func TestBuildChatRequest_EmptySystemPromptOmitted(t *testing.T) {
	conv := schema.NewConversation()
	conv.AddUser(schema.NewTextBlock("hello"))

	req, err := buildChatRequest("", conv, nil, defaultOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "user" {
		t.Errorf("role = %q, want user", req.Messages[0].Role)
	}
	// Single text part collapses to a bare string.
	if req.Messages[0].Content != "hello" {
		t.Errorf("content = %v, want bare string %q", req.Messages[0].Content, "hello")
	}
	if req.Stream {
		t.Error("stream must always be false")
	}
}

func TestBuildChatRequest_ToolsAttachedOnlyWhenRequested(t *testing.T) {
	conv := schema.NewConversation()
	conv.AddUser(schema.NewTextBlock("go"))
	catalog := []schema.ToolSpec{{
		Name:        "click_mouse",
		Description: "Click at coordinates",
		InputSchema: json.RawMessage(`{"type":"object"}`),
	}}

	opts := defaultOpts()
	opts.UseTools = true
	req, err := buildChatRequest("", conv, catalog, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(req.Tools))
	}
	if req.Tools[0].Name != "click_mouse" || string(req.Tools[0].Parameters) != `{"type":"object"}` {
		t.Errorf("tool schema not passed through: %+v", req.Tools[0])
	}
	if req.ToolChoice != "auto" {
		t.Errorf("tool_choice = %q, want auto", req.ToolChoice)
	}

	opts.UseTools = false
	req, err = buildChatRequest("", conv, catalog, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Tools) != 0 || req.ToolChoice != "" {
		t.Errorf("tools must be omitted when useTools is unset: %+v", req)
	}
}

func TestRenderMessage_MultiplePartsKeepArrayForm(t *testing.T) {
	msg := schema.Message{Role: schema.RoleUser, Content: []schema.ContentBlock{
		schema.NewTextBlock("look at this"),
		schema.NewImageBlock("image/png", "aGVsbG8="),
	}}

	wm, err := renderMessage(msg, schema.NewConversation(msg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := mustParts(t, wm.Content)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Type != partText || parts[1].Type != partImageURL {
		t.Errorf("unexpected part types: %q, %q", parts[0].Type, parts[1].Type)
	}
	if got := parts[1].ImageURL.URL; got != "data:image/png;base64,aGVsbG8=" {
		t.Errorf("image data URI = %q", got)
	}
}

func TestRenderMessage_AssistantToolUse(t *testing.T) {
	msg := schema.Message{Role: schema.RoleAssistant, Content: []schema.ContentBlock{
		schema.NewToolUseBlock("tu_1", "type_text", json.RawMessage(`{"text":"hi"}`)),
	}}

	wm, err := renderMessage(msg, schema.NewConversation(msg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wm.Role != "assistant" {
		t.Errorf("role = %q, want assistant", wm.Role)
	}
	parts := mustParts(t, wm.Content)
	if len(parts) != 1 || parts[0].Type != partFunctionCall {
		t.Fatalf("expected single function_call part, got %+v", parts)
	}
	fc := parts[0].FunctionCall
	if fc.Name != "type_text" || fc.Arguments != `{"text":"hi"}` {
		t.Errorf("function call = %+v", fc)
	}
}

func TestRenderMessage_UserActionFlattening(t *testing.T) {
	click := schema.NewToolUseBlock("tu_9", "click_mouse", json.RawMessage(`{"x":1,"y":2}`))
	shot := schema.NewImageBlock("image/png", "c2NyZWVu")
	msg := schema.Message{Role: schema.RoleUser, Content: []schema.ContentBlock{
		schema.NewUserActionBlock(click),
		schema.NewUserActionBlock(shot),
	}}

	wm, err := renderMessage(msg, schema.NewConversation(msg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := mustParts(t, wm.Content)
	if len(parts) != 2 {
		t.Fatalf("expected one part per nested leaf, got %d", len(parts))
	}
	if parts[0].Type != partText {
		t.Fatalf("first part type = %q, want text", parts[0].Type)
	}
	if !strings.HasPrefix(parts[0].Text, "User performed action: click_mouse\n") {
		t.Errorf("action text = %q", parts[0].Text)
	}
	if !strings.Contains(parts[0].Text, `"x": 1`) {
		t.Errorf("action text missing pretty-printed input: %q", parts[0].Text)
	}
	if parts[1].Type != partImageURL {
		t.Errorf("second part type = %q, want image_url", parts[1].Type)
	}
}

func TestRenderMessage_MixedUserActionIsNotFlattened(t *testing.T) {
	msg := schema.Message{Role: schema.RoleUser, Content: []schema.ContentBlock{
		schema.NewUserActionBlock(schema.NewImageBlock("image/png", "eA==")),
		schema.NewTextBlock("and then this happened"),
	}}

	wm, err := renderMessage(msg, schema.NewConversation(msg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := mustParts(t, wm.Content)
	// The user_action block falls through the per-block path and degrades to
	// its JSON form; the text block stays text.
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Type != partText || !strings.Contains(parts[0].Text, "user_action") {
		t.Errorf("expected JSON fallback for user_action in mixed message, got %+v", parts[0])
	}
}

func TestRenderToolResult_ImageFirstEmitsSentinelThenImage(t *testing.T) {
	result := schema.NewToolResultBlock("tu_5", false,
		schema.NewImageBlock("image/png", "cGl4ZWxz"),
		schema.NewTextBlock("ignored trailing block"),
	)

	parts, err := renderToolResult(result, schema.NewConversation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected exactly 2 parts, got %d", len(parts))
	}
	fr := parts[0].FunctionResponse
	if parts[0].Type != partFunctionResponse || fr.Name != "screenshot" || fr.Content != "screenshot successful" {
		t.Errorf("sentinel part = %+v", parts[0])
	}
	if parts[1].Type != partImageURL || parts[1].ImageURL.URL != "data:image/png;base64,cGl4ZWxz" {
		t.Errorf("image part = %+v", parts[1])
	}
}

func TestRenderToolResult_ResolvesNameFromFullHistory(t *testing.T) {
	conv := schema.NewConversation()
	conv.AddAssistant(schema.NewToolUseBlock("tu_7", "press_keys", json.RawMessage(`{"keys":["enter"]}`)))
	conv.AddUser(schema.NewTextBlock("something in between"))
	result := schema.NewToolResultBlock("tu_7", false, schema.NewTextBlock("done"))
	conv.AddToolResults(result)

	parts, err := renderToolResult(result, conv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	fr := parts[0].FunctionResponse
	if fr.Name != "press_keys" {
		t.Errorf("resolved name = %q, want press_keys", fr.Name)
	}
	if fr.Content != `{"type":"text","text":"done"}` {
		t.Errorf("serialised first element = %q", fr.Content)
	}
}

func TestRenderToolResult_UnknownToolFallback(t *testing.T) {
	result := schema.NewToolResultBlock("tu_missing", false, schema.NewTextBlock("ok"))

	parts, err := renderToolResult(result, schema.NewConversation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := parts[0].FunctionResponse.Name; got != "unknown_tool" {
		t.Errorf("name = %q, want unknown_tool", got)
	}
}

func TestRenderToolResult_ErrorFlagDoesNotChangeSerialisation(t *testing.T) {
	ok := schema.NewToolResultBlock("tu_1", false, schema.NewTextBlock("out"))
	failed := schema.NewToolResultBlock("tu_1", true, schema.NewTextBlock("out"))

	okParts, err := renderToolResult(ok, schema.NewConversation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	failedParts, err := renderToolResult(failed, schema.NewConversation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *okParts[0].FunctionResponse != *failedParts[0].FunctionResponse {
		t.Errorf("is_error changed the wire output: %+v vs %+v", okParts[0], failedParts[0])
	}
}

func TestRenderToolResult_EmptyContentFailsFast(t *testing.T) {
	result := schema.NewToolResultBlock("tu_2", false)
	if _, err := renderToolResult(result, schema.NewConversation()); err == nil {
		t.Fatal("expected error for tool result without content")
	}
}

func TestRenderBlock_UnknownTypeDegradesToJSONText(t *testing.T) {
	block := schema.ContentBlock{Type: "hologram", Text: "??"}

	parts, err := renderBlock(block, schema.NewConversation())
	if err != nil {
		t.Fatalf("fallback path must not fail: %v", err)
	}
	if len(parts) != 1 || parts[0].Type != partText {
		t.Fatalf("expected single text part, got %+v", parts)
	}
	if !strings.Contains(parts[0].Text, "hologram") {
		t.Errorf("fallback text = %q", parts[0].Text)
	}
}

func TestCollapseContent(t *testing.T) {
	single := []wirePart{{Type: partText, Text: "only"}}
	if got := collapseContent(single); got != "only" {
		t.Errorf("single text part should collapse to string, got %v", got)
	}

	image := []wirePart{{Type: partImageURL, ImageURL: &wireImageURL{URL: "data:x"}}}
	if _, ok := collapseContent(image).([]wirePart); !ok {
		t.Error("single non-text part must keep array form")
	}

	double := []wirePart{{Type: partText, Text: "a"}, {Type: partText, Text: "b"}}
	if _, ok := collapseContent(double).([]wirePart); !ok {
		t.Error("two parts must keep array form")
	}
}
