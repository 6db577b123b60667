package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain() *Renderer {
	return New(NewPalette(false))
}

func TestRenderPassthrough(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"plain text", "hello world\n", "hello world"},
		{"trailing whitespace", "some error   \t\r\n", "some error"},
		{"leading whitespace kept", "  indented\n", "  indented"},
		{"broken json", `{"type":"assistant"` + "\n", `{"type":"assistant"`},
		{"json number", "42\n", "42"},
	}

	r := plain()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Render(tt.line)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderHidesBlankLines(t *testing.T) {
	r := plain()
	for _, line := range []string{"\n", "   \n", "\t\r\n", ""} {
		got, ok := r.Render(line)
		assert.False(t, ok, "%q", line)
		assert.Empty(t, got)
	}
}

func TestRenderSystem(t *testing.T) {
	r := plain()

	got, ok := r.Render(`{"type":"system","subtype":"init","model":"claude-sonnet","session_id":"0123456789abcdef"}`)
	require.True(t, ok)
	assert.Equal(t, "[System] Session started (model: claude-sonnet, session: 01234567...)", got)

	got, ok = r.Render(`{"type":"system","subtype":"init"}`)
	require.True(t, ok)
	assert.Equal(t, "[System] Session started (model: unknown, session: ...)", got)

	_, ok = r.Render(`{"type":"system","subtype":"hook_response"}`)
	assert.False(t, ok)
}

func TestRenderAssistant(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		hidden bool
	}{
		{
			name: "text",
			line: `{"type":"assistant","message":{"content":[{"type":"text","text":"Working on it"}]}}`,
			want: "Working on it",
		},
		{
			name: "thinking",
			line: `{"type":"assistant","message":{"content":[{"type":"thinking","thinking":"plan first"}]}}`,
			want: "[Thinking] plan first",
		},
		{
			name: "parts joined in order",
			line: `{"type":"assistant","message":{"content":[` +
				`{"type":"thinking","thinking":"hmm"},` +
				`{"type":"text","text":"Reading"},` +
				`{"type":"tool_use","name":"Read","input":{"file_path":"/tmp/a.go"}}]}}`,
			want: "[Thinking] hmm\nReading\n[Tool: Read] file: /tmp/a.go",
		},
		{
			name:   "all blank",
			line:   `{"type":"assistant","message":{"content":[{"type":"text","text":"  \n"},{"type":"thinking","thinking":""}]}}`,
			hidden: true,
		},
		{
			name:   "no content",
			line:   `{"type":"assistant","message":{}}`,
			hidden: true,
		},
		{
			name:   "no message",
			line:   `{"type":"assistant"}`,
			hidden: true,
		},
		{
			name: "tool without name",
			line: `{"type":"assistant","message":{"content":[{"type":"tool_use"}]}}`,
			want: "[Tool: unknown]",
		},
		{
			name: "malformed block skipped",
			line: `{"type":"assistant","message":{"content":[{"type":"text","text":5},{"type":"text","text":"ok"}]}}`,
			want: "ok",
		},
	}

	r := plain()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Render(tt.line)
			if tt.hidden {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderToolUseDetails(t *testing.T) {
	long := strings.Repeat("x", 100)

	tests := []struct {
		tool  string
		input string
		want  string
	}{
		{"Read", `{"file_path":"a.txt"}`, "[Tool: Read] file: a.txt"},
		{"Write", `{"file_path":"b.txt","content":"..."}`, "[Tool: Write] file: b.txt"},
		{"Edit", `{"file_path":"c.txt"}`, "[Tool: Edit] file: c.txt"},
		{"Bash", `{"command":"go test ./..."}`, "[Tool: Bash] cmd: go test ./..."},
		{"Bash", `{"command":"` + long + `"}`, "[Tool: Bash] cmd: " + strings.Repeat("x", 77) + "..."},
		{"Glob", `{"pattern":"**/*.go"}`, "[Tool: Glob] pattern: **/*.go"},
		{"Grep", `{"pattern":"func main"}`, "[Tool: Grep] pattern: func main"},
		{"Task", `{"description":"explore repo"}`, "[Tool: Task] desc: explore repo"},
		{"WebFetch", `{"url":"https://example.com"}`, "[Tool: WebFetch] url: https://example.com"},
		{"TodoWrite", `{"todos":[{"content":"a"},{"content":"b"}]}`, "[Tool: TodoWrite] todos: 2 items"},
		{"TodoWrite", `{"todos":[]}`, "[Tool: TodoWrite] todos: 0 items"},
		{"Read", `{}`, "[Tool: Read]"},
		{"Read", `"not an object"`, "[Tool: Read]"},
		{"MultiEdit", `{"file_path":"d.txt"}`, "[Tool: MultiEdit]"},
	}

	r := plain()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			line := `{"type":"assistant","message":{"content":[{"type":"tool_use","name":"` + tt.tool + `","input":` + tt.input + `}]}}`
			got, ok := r.Render(line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderBashTruncationLength(t *testing.T) {
	cmd := strings.Repeat("a", 81)
	got := ToolDetail("Bash", ToolInput{Command: cmd})
	assert.Equal(t, "cmd: "+strings.Repeat("a", 77)+"...", got)
	assert.Len(t, strings.TrimPrefix(got, "cmd: "), 80)

	exact := strings.Repeat("b", 80)
	assert.Equal(t, "cmd: "+exact, ToolDetail("Bash", ToolInput{Command: exact}))
}

func TestRenderUser(t *testing.T) {
	long := strings.Repeat("r", 250)

	tests := []struct {
		name   string
		line   string
		want   string
		hidden bool
	}{
		{
			name: "short result",
			line: `{"type":"user","message":{"content":[{"type":"tool_result","content":"file contents"}]}}`,
			want: "[Result: file contents]",
		},
		{
			name: "long result truncated",
			line: `{"type":"user","message":{"content":[{"type":"tool_result","content":"` + long + `"}]}}`,
			want: "[Result: " + strings.Repeat("r", 200) + "...]",
		},
		{
			name: "only first result",
			line: `{"type":"user","message":{"content":[` +
				`{"type":"tool_result","content":"first"},{"type":"tool_result","content":"second"}]}}`,
			want: "[Result: first]",
		},
		{
			name: "skips non-string content",
			line: `{"type":"user","message":{"content":[` +
				`{"type":"tool_result","content":[{"type":"text","text":"x"}]},{"type":"tool_result","content":"second"}]}}`,
			want: "[Result: second]",
		},
		{
			name:   "blank result",
			line:   `{"type":"user","message":{"content":[{"type":"tool_result","content":"   "}]}}`,
			hidden: true,
		},
		{
			name:   "list content only",
			line:   `{"type":"user","message":{"content":[{"type":"tool_result","content":[{"type":"text","text":"x"}]}]}}`,
			hidden: true,
		},
		{
			name:   "plain user prompt",
			line:   `{"type":"user","message":{"content":"do the thing"}}`,
			hidden: true,
		},
	}

	r := plain()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Render(tt.line)
			if tt.hidden {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "success",
			line: `{"type":"result","subtype":"success","duration_ms":12345,"total_cost_usd":0.12345}`,
			want: "[Result] Completed in 12.3s (cost: $0.1235)",
		},
		{
			name: "error subtype",
			line: `{"type":"result","subtype":"error_max_turns","duration_ms":500,"total_cost_usd":1}`,
			want: "[Result] error_max_turns in 0.5s (cost: $1.0000)",
		},
		{
			name: "defaults",
			line: `{"type":"result","subtype":"success"}`,
			want: "[Result] Completed in 0.0s (cost: $0.0000)",
		},
		{
			name: "missing subtype",
			line: `{"type":"result"}`,
			want: "[Result] unknown in 0.0s (cost: $0.0000)",
		},
	}

	r := plain()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Render(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderSuppressesUnknownTypes(t *testing.T) {
	r := plain()
	for _, line := range []string{
		`{"type":"stream_event"}`,
		`{"subtype":"init"}`,
		`{}`,
		`null`,
	} {
		_, ok := r.Render(line)
		assert.False(t, ok, line)
	}
}

func TestRenderWithColor(t *testing.T) {
	r := New(NewPalette(true))

	got, ok := r.Render(`{"type":"assistant","message":{"content":[{"type":"text","text":"hi"}]}}`)
	require.True(t, ok)
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "hi")

	// Passthrough lines are never styled.
	got, ok = r.Render("raw output\n")
	require.True(t, ok)
	assert.Equal(t, "raw output", got)
}
