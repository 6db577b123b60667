// Package render turns Claude stream-json output into readable terminal lines.
//
// This file contains the event types decoded from a single line of
// `claude --output-format stream-json` output. Only the fields the renderer
// looks at are modelled; everything else in the payload is ignored.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventType identifies the type of a stream-json event.
type EventType string

const (
	// EventTypeSystem is a system event (e.g., init).
	EventTypeSystem EventType = "system"
	// EventTypeAssistant is an assistant message (text, thinking or tool use).
	EventTypeAssistant EventType = "assistant"
	// EventTypeUser is a user message (typically tool results).
	EventTypeUser EventType = "user"
	// EventTypeResult is the final result event when Claude completes.
	EventTypeResult EventType = "result"
)

// ContentType identifies the type of a content block in a message.
type ContentType string

const (
	ContentTypeText       ContentType = "text"
	ContentTypeThinking   ContentType = "thinking"
	ContentTypeToolUse    ContentType = "tool_use"
	ContentTypeToolResult ContentType = "tool_result"
)

// Event is one parsed line of stream-json output.
type Event struct {
	Type    EventType `json:"type"`
	Subtype string    `json:"subtype,omitempty"`

	// Init fields (system/init).
	SessionID string `json:"session_id,omitempty"`
	Model     string `json:"model,omitempty"`

	// Message is present for assistant and user events.
	Message *Message `json:"message,omitempty"`

	// Result fields.
	DurationMS   float64 `json:"duration_ms,omitempty"`
	TotalCostUSD float64 `json:"total_cost_usd,omitempty"`
}

// Message holds the content of an assistant or user event. Content is kept
// raw because the CLI sometimes sends a plain string instead of a block list.
type Message struct {
	Content json.RawMessage `json:"content,omitempty"`
}

// ContentBlock is a single piece of message content.
type ContentBlock struct {
	Type ContentType `json:"type"`

	// Text is set for text blocks.
	Text string `json:"text,omitempty"`

	// Thinking is set for thinking blocks.
	Thinking string `json:"thinking,omitempty"`

	// Tool use fields.
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// Content is the tool result payload: a string or a list of blocks.
	Content json.RawMessage `json:"content,omitempty"`
}

// ParseEvent parses a line of stream-json output.
func ParseEvent(line string) (*Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return nil, fmt.Errorf("failed to parse stream event: %w", err)
	}
	return &event, nil
}

// Blocks returns the decodable content blocks of the event's message, in
// order. Blocks that fail to decode are skipped.
func (e *Event) Blocks() []ContentBlock {
	if e.Message == nil || len(e.Message.Content) == 0 {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(e.Message.Content, &raw); err != nil {
		return nil
	}

	blocks := make([]ContentBlock, 0, len(raw))
	for _, r := range raw {
		var b ContentBlock
		if err := json.Unmarshal(r, &b); err != nil {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// IsInitEvent returns true if this is a system init event.
func (e *Event) IsInitEvent() bool {
	return e.Type == EventTypeSystem && e.Subtype == "init"
}

// IsSuccess returns true if this is a successful result event.
func (e *Event) IsSuccess() bool {
	return e.Type == EventTypeResult && e.Subtype == "success"
}

// ResultText returns the tool result content when it is a string.
// ok is false for list-shaped or missing content.
func (b *ContentBlock) ResultText() (text string, ok bool) {
	if len(b.Content) == 0 {
		return "", false
	}
	if err := json.Unmarshal(b.Content, &text); err != nil {
		return "", false
	}
	return text, true
}

// ToolInput holds the tool_use input fields the renderer summarises.
type ToolInput struct {
	FilePath    string            `json:"file_path,omitempty"`   // Read, Write, Edit
	Command     string            `json:"command,omitempty"`     // Bash
	Pattern     string            `json:"pattern,omitempty"`     // Glob, Grep
	Description string            `json:"description,omitempty"` // Task
	URL         string            `json:"url,omitempty"`         // WebFetch
	Todos       []json.RawMessage `json:"todos,omitempty"`       // TodoWrite
}

// ParseToolInput decodes the input of a tool_use block. Malformed input
// yields an empty ToolInput.
func (b *ContentBlock) ParseToolInput() ToolInput {
	var input ToolInput
	if len(b.Input) == 0 {
		return input
	}
	if err := json.Unmarshal(b.Input, &input); err != nil {
		return ToolInput{}
	}
	return input
}

// isBlank reports whether s has no non-whitespace characters.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
