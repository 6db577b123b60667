package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// InitLine is a system init event.
const InitLine = `{"type":"system","subtype":"init","model":"claude-sonnet-4","session_id":"5f1c2a9e-0000-4000-8000-000000000000","tools":["Bash","Read"]}` + "\n"

// HookLine is a system event that renders as nothing.
const HookLine = `{"type":"system","subtype":"hook_response","session_id":"5f1c2a9e"}` + "\n"

// assistantLine builds an assistant event with one content block.
func assistantLine(block map[string]any) string {
	return mustLine(map[string]any{
		"type":    "assistant",
		"message": map[string]any{"content": []any{block}},
	})
}

// TextLine returns an assistant text event.
func TextLine(text string) string {
	return assistantLine(map[string]any{"type": "text", "text": text})
}

// ThinkingLine returns an assistant thinking event.
func ThinkingLine(text string) string {
	return assistantLine(map[string]any{"type": "thinking", "thinking": text})
}

// ToolUseLine returns an assistant tool_use event.
func ToolUseLine(name string, input map[string]any) string {
	return assistantLine(map[string]any{"type": "tool_use", "id": "toolu_01", "name": name, "input": input})
}

// ToolResultLine returns a user event carrying a tool result.
func ToolResultLine(content string) string {
	return mustLine(map[string]any{
		"type": "user",
		"message": map[string]any{"content": []any{
			map[string]any{"type": "tool_result", "tool_use_id": "toolu_01", "content": content},
		}},
	})
}

// ResultLine returns a final result event.
func ResultLine(subtype string) string {
	return mustLine(map[string]any{
		"type":           "result",
		"subtype":        subtype,
		"duration_ms":    4200,
		"total_cost_usd": 0.0123,
	})
}

// DoneLine returns an assistant message announcing completion.
func DoneLine() string {
	return TextLine("All phases are complete.\n<CLAUDE>DONE</CLAUDE>")
}

// BlockedLine returns an assistant message reporting a blocker.
func BlockedLine(reason string) string {
	return TextLine(fmt.Sprintf("I cannot continue.\n<CLAUDE>BLOCKED: %s</CLAUDE>", reason))
}

// ContinueRun is a typical iteration that neither finishes nor blocks.
func ContinueRun() []string {
	return []string{
		InitLine,
		HookLine,
		ThinkingLine("Next unchecked phase is 2."),
		ToolUseLine("Read", map[string]any{"file_path": "PRD.json"}),
		ToolResultLine("{\"phases\": []}"),
		TextLine("Phase 2 implemented."),
		ResultLine("success"),
	}
}

// mustLine encodes v as one stream-json line. HTML escaping is off so
// sentinels appear literally, as they do in real Claude output.
func mustLine(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		panic(err)
	}
	return buf.String()
}
