package render

import "fmt"

const (
	maxCommandLen    = 80
	maxResultLen     = 200
	ellipsis         = "..."
	resultTruncation = "...]"
)

// toolDetails maps known tool names to a one-line summary of their input.
// Tools not listed render with their name only.
var toolDetails = map[string]func(ToolInput) string{
	"Read":  fileDetail,
	"Write": fileDetail,
	"Edit":  fileDetail,
	"Bash": func(in ToolInput) string {
		if in.Command == "" {
			return ""
		}
		return "cmd: " + truncateRunes(in.Command, maxCommandLen, ellipsis)
	},
	"Glob": patternDetail,
	"Grep": patternDetail,
	"Task": func(in ToolInput) string {
		if in.Description == "" {
			return ""
		}
		return "desc: " + in.Description
	},
	"WebFetch": func(in ToolInput) string {
		if in.URL == "" {
			return ""
		}
		return "url: " + in.URL
	},
	"TodoWrite": func(in ToolInput) string {
		if in.Todos == nil {
			return ""
		}
		return fmt.Sprintf("todos: %d items", len(in.Todos))
	},
}

func fileDetail(in ToolInput) string {
	if in.FilePath == "" {
		return ""
	}
	return "file: " + in.FilePath
}

func patternDetail(in ToolInput) string {
	if in.Pattern == "" {
		return ""
	}
	return "pattern: " + in.Pattern
}

// ToolDetail returns the summary shown next to a tool name, or "" when the
// tool is unknown or its input lacks the relevant field.
func ToolDetail(name string, in ToolInput) string {
	detail, ok := toolDetails[name]
	if !ok {
		return ""
	}
	return detail(in)
}

// truncateRunes shortens s to max runes, replacing the tail with marker so
// the result is exactly max runes long. Strings within max are unchanged.
func truncateRunes(s string, max int, marker string) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	keep := max - len([]rune(marker))
	if keep < 0 {
		keep = 0
	}
	return string(r[:keep]) + marker
}

// prefixRunes returns the first n runes of s.
func prefixRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
