package providers

import (
	"encoding/json"
	"testing"

	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

func TestWireTools_PassThrough(t *testing.T) {
	schemaJSON := json.RawMessage(`{"type":"object","properties":{"x":{"type":"integer"}}}`)
	specs := []schema.ToolSpec{
		{Name: "click_mouse", Description: "Click the mouse", InputSchema: schemaJSON},
		{Name: "screenshot", Description: "Take a screenshot", InputSchema: json.RawMessage(`{"type":"object"}`)},
	}

	out := wireTools(specs)
	if len(out) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(out))
	}
	if out[0].Name != "click_mouse" || out[0].Description != "Click the mouse" {
		t.Errorf("tool[0] = %+v", out[0])
	}
	if string(out[0].Parameters) != string(schemaJSON) {
		t.Errorf("parameters not passed through unchanged: %s", out[0].Parameters)
	}
}

func TestWireTools_EmptyCatalog(t *testing.T) {
	if out := wireTools(nil); len(out) != 0 {
		t.Errorf("expected empty output, got %+v", out)
	}
}

func TestResolveToolName(t *testing.T) {
	conv := schema.NewConversation()
	conv.AddUser(schema.NewTextBlock("open the browser"))
	conv.AddAssistant(
		schema.NewTextBlock("opening"),
		schema.NewToolUseBlock("tu_1", "click_mouse", json.RawMessage(`{}`)),
	)
	conv.AddUser(schema.NewTextBlock("now type something"))
	conv.AddAssistant(schema.NewToolUseBlock("tu_2", "type_text", json.RawMessage(`{}`)))

	tests := []struct {
		id    string
		want  string
		found bool
	}{
		{"tu_1", "click_mouse", true},
		{"tu_2", "type_text", true},
		{"tu_3", "", false},
	}
	for _, tt := range tests {
		got, ok := resolveToolName(tt.id, conv)
		if ok != tt.found || got != tt.want {
			t.Errorf("resolveToolName(%q) = (%q, %v), want (%q, %v)", tt.id, got, ok, tt.want, tt.found)
		}
	}
}
