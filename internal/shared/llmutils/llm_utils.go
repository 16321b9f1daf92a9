package llmutils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

var reThink = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Truncate shortens a string to at most n characters, adding "..." if it was truncated.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// StripThink removes <think>…</think> blocks that some models embed.
func StripThink(s string) string {
	return reThink.ReplaceAllString(s, "")
}

// ToolHint generates a short hint string for tool_use blocks,
// e.g. `click_mouse("left"), type_text("hello wor…")`.
func ToolHint(uses []schema.ContentBlock) string {
	parts := make([]string, 0, len(uses))
	for _, use := range uses {
		if use.Type != schema.BlockToolUse {
			continue
		}
		var args map[string]any
		_ = json.Unmarshal(use.Input, &args)

		var firstVal string
		for _, v := range args {
			if s, ok := v.(string); ok {
				firstVal = s
			}
			break
		}
		if firstVal == "" {
			parts = append(parts, use.Name)
			continue
		}
		if len(firstVal) > 40 {
			firstVal = firstVal[:40] + "…"
		}
		parts = append(parts, fmt.Sprintf("%s(%q)", use.Name, firstVal))
	}
	return strings.Join(parts, ", ")
}
