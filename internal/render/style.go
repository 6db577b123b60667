package render

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Role is a logical styling role.
type Role int

const (
	RoleSystem   Role = iota // session banner
	RoleTool                 // tool use and tool results
	RoleText                 // assistant text
	RoleThinking             // reasoning blocks
	RoleResult               // final result line
)

// Palette maps roles to terminal styles. The zero value applies no styling.
type Palette struct {
	styles map[Role]*color.Color
}

// NewPalette returns a palette with ANSI styling when enabled is true and a
// plain palette otherwise.
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{}
	}

	styles := map[Role]*color.Color{
		RoleSystem:   color.New(color.Faint),
		RoleTool:     color.New(color.Faint),
		RoleText:     color.New(color.Bold, color.FgCyan),
		RoleThinking: color.New(color.FgYellow),
		RoleResult:   color.New(color.FgGreen),
	}
	// Force escapes on: the decision was already made by the caller, and
	// color's own global detection must not override it.
	for _, c := range styles {
		c.EnableColor()
	}
	return Palette{styles: styles}
}

// Enabled reports whether the palette emits escape sequences.
func (p Palette) Enabled() bool {
	return len(p.styles) > 0
}

// Apply wraps s in the escape sequences for role.
func (p Palette) Apply(role Role, s string) string {
	c, ok := p.styles[role]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

// ColorEnabled decides whether output to f should be styled. NO_COLOR wins
// over terminal detection.
func ColorEnabled(f *os.File, getenv func(string) string) bool {
	if getenv != nil && getenv("NO_COLOR") != "" {
		return false
	}
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
