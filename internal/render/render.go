package render

import (
	"fmt"
	"strings"
)

// Renderer converts raw stream-json lines into display strings.
// It keeps no state between lines.
type Renderer struct {
	palette Palette
}

// New creates a Renderer that styles output with p.
func New(p Palette) *Renderer {
	return &Renderer{palette: p}
}

// Render returns the display form of one raw output line. ok is false when
// the line should not be shown. Lines that are not JSON are passed through
// with trailing whitespace removed; blank ones are hidden.
func (r *Renderer) Render(line string) (string, bool) {
	event, err := ParseEvent(line)
	if err != nil {
		text := strings.TrimRight(line, " \t\r\n")
		return text, text != ""
	}

	switch event.Type {
	case EventTypeSystem:
		return r.renderSystem(event)
	case EventTypeAssistant:
		return r.renderAssistant(event)
	case EventTypeUser:
		return r.renderUser(event)
	case EventTypeResult:
		return r.renderResult(event), true
	default:
		return "", false
	}
}

func (r *Renderer) renderSystem(e *Event) (string, bool) {
	if !e.IsInitEvent() {
		return "", false
	}
	model := e.Model
	if model == "" {
		model = "unknown"
	}
	return r.palette.Apply(RoleSystem, fmt.Sprintf(
		"[System] Session started (model: %s, session: %s...)",
		model, prefixRunes(e.SessionID, 8),
	)), true
}

func (r *Renderer) renderAssistant(e *Event) (string, bool) {
	var parts []string
	for _, block := range e.Blocks() {
		switch block.Type {
		case ContentTypeText:
			if !isBlank(block.Text) {
				parts = append(parts, r.palette.Apply(RoleText, block.Text))
			}
		case ContentTypeThinking:
			if !isBlank(block.Thinking) {
				parts = append(parts, r.palette.Apply(RoleThinking, "[Thinking] "+block.Thinking))
			}
		case ContentTypeToolUse:
			parts = append(parts, r.formatToolUse(&block))
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

func (r *Renderer) formatToolUse(b *ContentBlock) string {
	name := b.Name
	if name == "" {
		name = "unknown"
	}
	if detail := ToolDetail(name, b.ParseToolInput()); detail != "" {
		return r.palette.Apply(RoleTool, fmt.Sprintf("[Tool: %s] %s", name, detail))
	}
	return r.palette.Apply(RoleTool, fmt.Sprintf("[Tool: %s]", name))
}

// renderUser shows the first tool result with non-blank string content.
func (r *Renderer) renderUser(e *Event) (string, bool) {
	for _, block := range e.Blocks() {
		if block.Type != ContentTypeToolResult {
			continue
		}
		text, ok := block.ResultText()
		if !ok || isBlank(text) {
			continue
		}
		if len([]rune(text)) > maxResultLen {
			return r.palette.Apply(RoleTool, "[Result: "+prefixRunes(text, maxResultLen)+resultTruncation), true
		}
		return r.palette.Apply(RoleTool, "[Result: "+text+"]"), true
	}
	return "", false
}

func (r *Renderer) renderResult(e *Event) string {
	duration := e.DurationMS / 1000
	subtype := e.Subtype
	if e.IsSuccess() {
		subtype = "Completed"
	} else if subtype == "" {
		subtype = "unknown"
	}
	return r.palette.Apply(RoleResult, fmt.Sprintf(
		"[Result] %s in %.1fs (cost: $%.4f)", subtype, duration, e.TotalCostUSD,
	))
}
